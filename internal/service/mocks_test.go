package service

import (
	"context"
	"mime/multipart"

	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/repository"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
	"github.com/stretchr/testify/mock"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepository) AddUser(ctx context.Context, data domain.User) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockUserRepository) UpdateUserProfile(ctx context.Context, data domain.User) error {
	return m.Called(ctx, data).Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.ProductRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

func (m *mockProductRepository) AddProduct(ctx context.Context, data domain.Product) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockProductRepository) AddProductImages(ctx context.Context, images []domain.ProductImage) error {
	return m.Called(ctx, images).Error(0)
}

func (m *mockProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetProducts(ctx context.Context, filter pkgdto.Filter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) UpdateProduct(ctx context.Context, data domain.Product) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockProductRepository) DeleteProductImages(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.OrderRepository) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}

func (m *mockOrderRepository) GetProductsForUpdate(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *mockOrderRepository) DecreaseProductStock(ctx context.Context, productID string, quantity int64) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *mockOrderRepository) AddOrder(ctx context.Context, data domain.Order) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockOrderRepository) AddOrderItems(ctx context.Context, data []domain.OrderItem) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockOrderRepository) GetOrderByID(ctx context.Context, id string, userID string) (domain.Order, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockOrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) {
	m.Called(ctx, eventType, key, data)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendOrderConfirmation(ctx context.Context, to string, order dto.OrderPlacedEvent) error {
	return m.Called(ctx, to, order).Error(0)
}

type mockImageStorage struct {
	mock.Mock
}

func (m *mockImageStorage) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockImageStorage) Remove(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}
