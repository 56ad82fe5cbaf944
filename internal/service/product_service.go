package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/metrics"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/validation"
	"github.com/rs/zerolog/log"
)

const (
	NewCollectionSize = 8
	PopularLimit      = 4

	newCollectionCacheKey = "products:newcollections"
	popularCacheKeyPrefix = "products:popular:"
	viewGenerationKey     = "products:views:generation"

	uploadPrefix = "product"
)

type ProductServiceImpl struct {
	repo      repository.ProductRepository
	publisher EventPublisher
	cache     ProductCache
	storage   ImageStorage
}

// CreateProductService accepts a nil cache, in which case every read goes to the store.
func CreateProductService(repo repository.ProductRepository, publisher EventPublisher, cache ProductCache, storage ImageStorage) ProductService {
	return &ProductServiceImpl{repo: repo, publisher: publisher, cache: cache, storage: storage}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.AddProductResponse, err error) {
	if err = validation.Validate(req); err != nil {
		return
	}

	id, err := s.repo.NextProductID(ctx)
	if err != nil {
		return
	}

	product := domain.Product{
		ID:        id,
		Name:      req.Name,
		Image:     req.Image,
		Category:  req.Category,
		NewPrice:  req.NewPrice,
		OldPrice:  req.OldPrice,
		Date:      time.Now().UTC(),
		Available: true,
	}

	_, err = s.repo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	s.invalidateViews(ctx, product.Category)
	s.publish(ctx, "add_product", id, toProductResponse(product))

	return dto.AddProductResponse{Success: true, ID: id, Name: req.Name}, nil
}

func (s *ProductServiceImpl) RemoveProduct(ctx context.Context, id int64) (resp dto.RemoveProductResponse, err error) {
	product, err := s.repo.DeleteProductByID(ctx, id)
	if err != nil {
		return
	}

	s.invalidateViews(ctx, product.Category)
	s.publish(ctx, "delete_product", id, toProductResponse(product))

	return dto.RemoveProductResponse{Success: true, ID: id}, nil
}

func (s *ProductServiceImpl) GetAllProducts(ctx context.Context) (data []dto.ProductResponse, err error) {
	products, err := s.repo.GetProducts(ctx, repository.ProductFilter{})
	if err != nil {
		return
	}

	return toProductResponses(products), nil
}

func (s *ProductServiceImpl) GetNewCollection(ctx context.Context) (data []dto.ProductResponse, err error) {
	key, cacheable := s.viewKey(ctx, newCollectionCacheKey)
	if cacheable && s.fromCache(ctx, key, &data) {
		return data, nil
	}

	products, err := s.repo.GetProducts(ctx, repository.ProductFilter{})
	if err != nil {
		return
	}

	data = toProductResponses(NewCollectionWindow(products))
	if cacheable {
		s.toCache(ctx, key, data)
	}

	return data, nil
}

func (s *ProductServiceImpl) GetPopularInCategory(ctx context.Context, category string) (data []dto.ProductResponse, err error) {
	key, cacheable := s.viewKey(ctx, popularCacheKeyPrefix+category)
	if cacheable && s.fromCache(ctx, key, &data) {
		return data, nil
	}

	products, err := s.repo.GetProducts(ctx, repository.ProductFilter{Category: category, Limit: PopularLimit})
	if err != nil {
		return
	}

	data = toProductResponses(products)
	if cacheable {
		s.toCache(ctx, key, data)
	}

	return data, nil
}

func (s *ProductServiceImpl) UploadImage(ctx context.Context, originalName string, r io.Reader) (resp dto.UploadResponse, err error) {
	if r == nil {
		return resp, errs.ErrNoFileUploaded
	}

	url, err := s.storage.Save(ctx, uploadPrefix, originalName, r)
	if err != nil {
		return
	}

	return dto.UploadResponse{Success: 1, ImageURL: url}, nil
}

// ReconcileSequence keeps the id counter at or above the highest stored id so
// products inserted behind the service's back cannot collide with new ones.
func (s *ProductServiceImpl) ReconcileSequence() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	maxID, err := s.repo.ReconcileProductSequence(ctx)
	if err != nil {
		log.Error().Err(err).Str("component", "ReconcileSequence").Msg("")
		return
	}

	log.Debug().Str("component", "ReconcileSequence").Int64("max_id", maxID).Msg("product sequence reconciled")
}

// NewCollectionWindow drops the first product and keeps the trailing
// NewCollectionSize of what remains.
func NewCollectionWindow(products []domain.Product) []domain.Product {
	if len(products) <= 1 {
		return []domain.Product{}
	}

	rest := products[1:]
	if len(rest) > NewCollectionSize {
		rest = rest[len(rest)-NewCollectionSize:]
	}

	return rest
}

func (s *ProductServiceImpl) publish(ctx context.Context, eventType string, id int64, data interface{}) {
	err := s.publisher.Publish(ctx, dto.KafkaMessage{EventType: eventType, Data: data}, strconv.FormatInt(id, 10))
	if err != nil {
		// event delivery is best effort
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
		metrics.ProductEvents.WithLabelValues(eventType, "failed").Inc()
		return
	}

	metrics.ProductEvents.WithLabelValues(eventType, "published").Inc()
}

// viewKey pins a cached view to the generation read before the store query.
// A view computed across an invalidation lands under a generation no reader
// asks for anymore, so it cannot outlive the write that made it stale.
func (s *ProductServiceImpl) viewKey(ctx context.Context, base string) (key string, ok bool) {
	if s.cache == nil {
		return "", false
	}

	var gen int64
	if _, err := s.cache.Get(ctx, viewGenerationKey, &gen); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "viewKey").Msg("")
		return "", false
	}

	return base + ":g" + strconv.FormatInt(gen, 10), true
}

func (s *ProductServiceImpl) fromCache(ctx context.Context, key string, out *[]dto.ProductResponse) bool {
	if s.cache == nil {
		return false
	}

	found, err := s.cache.Get(ctx, key, out)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "fromCache").Str("key", key).Msg("")
		return false
	}

	return found
}

func (s *ProductServiceImpl) toCache(ctx context.Context, key string, data []dto.ProductResponse) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "toCache").Str("key", key).Msg("")
	}
}

func (s *ProductServiceImpl) invalidateViews(ctx context.Context, category string) {
	if s.cache == nil {
		return
	}

	gen, err := s.cache.Incr(ctx, viewGenerationKey)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "invalidateViews").Msg("")
		return
	}

	// views of the previous generation are unreachable now; drop them early
	prev := ":g" + strconv.FormatInt(gen-1, 10)
	if err := s.cache.Invalidate(ctx, newCollectionCacheKey+prev, popularCacheKeyPrefix+category+prev); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "invalidateViews").Msg("")
	}
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		NewPrice:  p.NewPrice,
		OldPrice:  p.OldPrice,
		Date:      p.Date,
		Available: p.Available,
	}
}

func toProductResponses(products []domain.Product) []dto.ProductResponse {
	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, toProductResponse(p))
	}

	return data
}
