package service

import (
	"context"
	"io"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
)

type EventPublisher interface {
	Publish(ctx context.Context, msg dto.KafkaMessage, key string) error
}

type ProductCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Incr(ctx context.Context, key string) (int64, error)
	Invalidate(ctx context.Context, keys ...string) error
}

type ImageStorage interface {
	Save(ctx context.Context, prefix string, originalName string, r io.Reader) (url string, err error)
}

type UserService interface {
	Register(ctx context.Context, req dto.SignupRequest) (resp dto.TokenResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.TokenResponse, err error)
}

type ProductService interface {
	AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.AddProductResponse, err error)
	RemoveProduct(ctx context.Context, id int64) (resp dto.RemoveProductResponse, err error)
	GetAllProducts(ctx context.Context) (data []dto.ProductResponse, err error)
	GetNewCollection(ctx context.Context) (data []dto.ProductResponse, err error)
	GetPopularInCategory(ctx context.Context, category string) (data []dto.ProductResponse, err error)
	UploadImage(ctx context.Context, originalName string, r io.Reader) (resp dto.UploadResponse, err error)
	ReconcileSequence()
}

type CartService interface {
	AddItem(ctx context.Context, userID string, itemID int) (err error)
	RemoveItem(ctx context.Context, userID string, itemID int) (err error)
	GetCart(ctx context.Context, userID string) (cart domain.Cart, err error)
}
