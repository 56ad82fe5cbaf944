package service

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryProductRepo mirrors the mongo repository: a counter that only moves
// forward and results sorted by id.
type memoryProductRepo struct {
	mu       sync.Mutex
	seq      int64
	products map[int64]domain.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: make(map[int64]domain.Product)}
}

var _ repository.ProductRepository = (*memoryProductRepo)(nil)

func (r *memoryProductRepo) NextProductID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

func (r *memoryProductRepo) ReconcileProductSequence(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID int64
	for id := range r.products {
		if id > maxID {
			maxID = id
		}
	}
	if maxID > r.seq {
		r.seq = maxID
	}
	return maxID, nil
}

func (r *memoryProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[data.ID]; ok {
		return primitive.NilObjectID, errs.ErrConflict
	}
	data.ObjectID = primitive.NewObjectID()
	r.products[data.ID] = data
	return data.ObjectID, nil
}

func (r *memoryProductRepo) DeleteProductByID(ctx context.Context, id int64) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, errs.ErrNotFound
	}
	delete(r.products, id)
	return p, nil
}

func (r *memoryProductRepo) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// memoryUserRepo applies each cart mutation under one lock, the in-process
// equivalent of a single-document $inc.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

var _ repository.UserRepository = (*memoryUserRepo)(nil)

func (r *memoryUserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, nil
}

func (r *memoryUserRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, errs.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[oid]
	if !ok {
		return domain.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) AddUser(ctx context.Context, data domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == data.Email {
			return primitive.NilObjectID, errs.ErrEmailAlreadyUsed
		}
	}
	data.ID = primitive.NewObjectID()
	r.users[data.ID] = data
	return data.ID, nil
}

func (r *memoryUserRepo) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return u.CartData, nil
}

func (r *memoryUserRepo) IncrementCartItem(ctx context.Context, userID string, itemID int) error {
	return r.mutate(userID, func(c *domain.Cart) error { return c.Add(itemID) })
}

func (r *memoryUserRepo) DecrementCartItem(ctx context.Context, userID string, itemID int) error {
	return r.mutate(userID, func(c *domain.Cart) error { return c.Remove(itemID) })
}

func (r *memoryUserRepo) mutate(userID string, fn func(c *domain.Cart) error) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[oid]
	if !ok {
		return errs.ErrNotFound
	}
	if err := fn(&u.CartData); err != nil {
		return err
	}
	r.users[oid] = u
	return nil
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, msg dto.KafkaMessage, key string) error {
	args := m.Called(ctx, msg, key)
	return args.Error(0)
}

type ProductRepoMock struct {
	mock.Mock
}

func (m *ProductRepoMock) NextProductID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) ReconcileProductSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *ProductRepoMock) DeleteProductByID(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *ProductRepoMock) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

type memoryStorage struct {
	saved map[string]string
}

func (s *memoryStorage) Save(ctx context.Context, prefix string, originalName string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	name := prefix + "_" + originalName
	s.saved[name] = string(b)
	return "http://localhost:4000/images/" + name, nil
}
