package repository

import (
	"context"

	"github.com/muna8646/airtisan/internal/domain"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	GetUserByID(ctx context.Context, id string) (res domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (err error)
	UpdateUserProfile(ctx context.Context, data domain.User) (err error)
}

type ProductRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) error

	AddProduct(ctx context.Context, data domain.Product) (err error)
	AddProductImages(ctx context.Context, images []domain.ProductImage) (err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProductImages(ctx context.Context, productID string) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

type OrderRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error

	GetProductsForUpdate(ctx context.Context, ids []string) (data map[string]domain.Product, err error)
	DecreaseProductStock(ctx context.Context, productID string, quantity int64) (err error)
	AddOrder(ctx context.Context, data domain.Order) (err error)
	AddOrderItems(ctx context.Context, data []domain.OrderItem) (err error)
	GetOrderByID(ctx context.Context, id string, userID string) (data domain.Order, err error)
	GetOrdersByUserID(ctx context.Context, userID string) (data []domain.Order, err error)
}
