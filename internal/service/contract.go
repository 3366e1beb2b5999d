package service

import (
	"context"
	"mime/multipart"

	"github.com/muna8646/airtisan/internal/dto"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (resp dto.TokenResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.TokenResponse, err error)
	GetProfile(ctx context.Context, userID string) (resp dto.UserResponse, err error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (resp dto.UserResponse, err error)
}

type ProductService interface {
	AddProduct(ctx context.Context, req dto.ProductRequest, files []*multipart.FileHeader) (resp dto.CreatedResponse, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (resp []dto.ProductResponse, err error)
	GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, req dto.ProductRequest) (err error)
	DeleteProduct(ctx context.Context, id string, sellerID string) (err error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, req dto.OrderRequest) (resp dto.PlaceOrderResponse, err error)
	GetOrders(ctx context.Context, userID string) (resp []dto.OrderResponse, err error)
	GetOrderByID(ctx context.Context, id string, userID string) (resp dto.OrderResponse, err error)
}

// EventPublisher emits domain events after the owning transaction has committed.
// Implementations must not fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, data interface{})
}

type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, to string, order dto.OrderPlacedEvent) error
}
