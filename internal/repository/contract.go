package repository

import (
	"context"

	"github.com/alimikegami/e-commerce/shop-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productsCollection = "products"
	usersCollection    = "users"
	countersCollection = "counters"
	productsSequenceID = "products"
)

type ProductFilter struct {
	Category string
	Limit    int64
}

type ProductRepository interface {
	NextProductID(ctx context.Context) (id int64, err error)
	ReconcileProductSequence(ctx context.Context) (maxID int64, err error)
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	DeleteProductByID(ctx context.Context, id int64) (product domain.Product, err error)
	GetProducts(ctx context.Context, filter ProductFilter) (data []domain.Product, err error)
}

// UserRepository cart mutations are single atomic updates on the store, never
// a read of the whole user followed by a write-back.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (user domain.User, err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetCart(ctx context.Context, userID string) (cart domain.Cart, err error)
	IncrementCartItem(ctx context.Context, userID string, itemID int) (err error)
	DecrementCartItem(ctx context.Context, userID string, itemID int) (err error)
}
