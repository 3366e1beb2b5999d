package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalog() map[string]domain.Product {
	return map[string]domain.Product{
		"p1": {ID: "p1", Price: 10, Stock: 5},
		"p2": {ID: "p2", Price: 0.1, Stock: 10},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	repo := new(mockOrderRepository)
	publisher := new(mockPublisher)
	notifier := new(mockNotifier)
	svc := CreateNewOrderService(repo, publisher, notifier)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1", "p2"}).Return(catalog(), nil)
	repo.On("AddOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.UserID == "buyer-b" && o.Status == domain.OrderStatusPending && o.Total == 30.3
	})).Return(nil)
	repo.On("AddOrderItems", ctx, mock.MatchedBy(func(items []domain.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductID == "p1" && items[0].Quantity == 3 && items[0].Price == 10 &&
			items[1].ProductID == "p2" && items[1].Quantity == 3 && items[1].Price == 0.1
	})).Return(nil)
	repo.On("DecreaseProductStock", ctx, "p1", int64(3)).Return(nil)
	repo.On("DecreaseProductStock", ctx, "p2", int64(3)).Return(nil)
	publisher.On("Publish", ctx, dto.EventOrderPlaced, mock.AnythingOfType("string"), mock.AnythingOfType("dto.OrderPlacedEvent"))
	notifier.On("SendOrderConfirmation", ctx, "b@x.com", mock.AnythingOfType("dto.OrderPlacedEvent")).Return(nil)

	resp, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID:    "buyer-b",
		UserEmail: "b@x.com",
		Items: []dto.OrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 30.3, resp.Total)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestOrderService_PlaceOrderEmptyCart(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)

	_, err := svc.PlaceOrder(context.Background(), dto.OrderRequest{UserID: "buyer-b"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.PlaceOrder(context.Background(), dto.OrderRequest{UserID: "buyer-b", Items: []dto.OrderItem{}})
	assert.ErrorIs(t, err, errs.ErrValidation)
	repo.AssertNotCalled(t, "HandleTrx", mock.Anything)
}

func TestOrderService_PlaceOrderNonPositiveQuantity(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)

	_, err := svc.PlaceOrder(context.Background(), dto.OrderRequest{
		UserID: "buyer-b",
		Items:  []dto.OrderItem{{ProductID: "p1", Quantity: 0}},
	})

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items[0].quantity", validationErr.Fields[0].Field)
	repo.AssertNotCalled(t, "HandleTrx", mock.Anything)
}

func TestOrderService_PlaceOrderQuantityTooLarge(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)

	_, err := svc.PlaceOrder(context.Background(), dto.OrderRequest{
		UserID: "buyer-b",
		Items: []dto.OrderItem{
			{ProductID: "p1", Quantity: math.MaxInt64/2 + 1},
			{ProductID: "p1", Quantity: math.MaxInt64/2 + 1},
		},
	})

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items[0].quantity", validationErr.Fields[0].Field)
	assert.Equal(t, "lte", validationErr.Fields[0].Tag)
	repo.AssertNotCalled(t, "HandleTrx", mock.Anything)
}

func TestAggregateDemand(t *testing.T) {
	demand, ids, err := aggregateDemand([]dto.OrderItem{
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.Equal(t, map[string]int64{"p1": 3, "p2": 5}, demand)
}

func TestAggregateDemand_Overflow(t *testing.T) {
	_, _, err := aggregateDemand([]dto.OrderItem{
		{ProductID: "p1", Quantity: math.MaxInt64/2 + 1},
		{ProductID: "p1", Quantity: math.MaxInt64/2 + 1},
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)

	var productErr *errs.ProductError
	require.ErrorAs(t, err, &productErr)
	assert.Equal(t, "p1", productErr.ProductID)
}

func TestOrderService_PlaceOrderUnknownProduct(t *testing.T) {
	repo := new(mockOrderRepository)
	publisher := new(mockPublisher)
	svc := CreateNewOrderService(repo, publisher, nil)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1", "p9"}).Return(catalog(), nil)

	_, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID: "buyer-b",
		Items: []dto.OrderItem{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p9", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, errs.ErrOrderProductNotFound)

	var productErr *errs.ProductError
	require.ErrorAs(t, err, &productErr)
	assert.Equal(t, "p9", productErr.ProductID)

	repo.AssertNotCalled(t, "AddOrder", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DecreaseProductStock", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderInsufficientStock(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1", "p2"}).Return(catalog(), nil)

	_, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID: "buyer-b",
		Items: []dto.OrderItem{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 6},
		},
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)

	var productErr *errs.ProductError
	require.ErrorAs(t, err, &productErr)
	assert.Equal(t, "p1", productErr.ProductID)
	repo.AssertNotCalled(t, "AddOrder", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderCombinesRepeatedLines(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1"}).Return(catalog(), nil)

	// 3 + 3 exceeds the stock of 5 even though each line fits on its own
	_, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID: "buyer-b",
		Items: []dto.OrderItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	repo.AssertNotCalled(t, "AddOrder", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderLostRace(t *testing.T) {
	repo := new(mockOrderRepository)
	publisher := new(mockPublisher)
	svc := CreateNewOrderService(repo, publisher, nil)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1"}).Return(catalog(), nil)
	repo.On("AddOrder", ctx, mock.Anything).Return(nil)
	repo.On("AddOrderItems", ctx, mock.Anything).Return(nil)
	repo.On("DecreaseProductStock", ctx, "p1", int64(3)).Return(errs.NewProductError("p1", errs.ErrInsufficientStock))

	_, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID: "buyer-c",
		Items:  []dto.OrderItem{{ProductID: "p1", Quantity: 3}},
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrderIgnoresMailFailure(t *testing.T) {
	repo := new(mockOrderRepository)
	publisher := new(mockPublisher)
	notifier := new(mockNotifier)
	svc := CreateNewOrderService(repo, publisher, notifier)
	ctx := context.Background()

	repo.On("HandleTrx", ctx).Return(nil)
	repo.On("GetProductsForUpdate", ctx, []string{"p1"}).Return(catalog(), nil)
	repo.On("AddOrder", ctx, mock.Anything).Return(nil)
	repo.On("AddOrderItems", ctx, mock.Anything).Return(nil)
	repo.On("DecreaseProductStock", ctx, "p1", int64(1)).Return(nil)
	publisher.On("Publish", ctx, dto.EventOrderPlaced, mock.Anything, mock.Anything)
	notifier.On("SendOrderConfirmation", ctx, "c@x.com", mock.Anything).Return(errors.New("smtp down"))

	resp, err := svc.PlaceOrder(ctx, dto.OrderRequest{
		UserID:    "buyer-c",
		UserEmail: "c@x.com",
		Items:     []dto.OrderItem{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.Total)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)
	ctx := context.Background()

	repo.On("GetOrderByID", ctx, "o1", "buyer-b").Return(domain.Order{
		ID:     "o1",
		UserID: "buyer-b",
		Status: domain.OrderStatusPending,
		Total:  30,
		Items:  []domain.OrderItem{{ProductID: "p1", Quantity: 3, Price: 10}},
	}, nil)
	repo.On("GetOrderByID", ctx, "o1", "buyer-c").Return(domain.Order{}, errs.ErrOrderNotFound)

	resp, err := svc.GetOrderByID(ctx, "o1", "buyer-b")
	require.NoError(t, err)
	assert.Equal(t, []dto.OrderItemResponse{{ProductID: "p1", Quantity: 3, Price: 10}}, resp.Items)

	_, err = svc.GetOrderByID(ctx, "o1", "buyer-c")
	assert.ErrorIs(t, err, errs.ErrOrderNotFound)
}

func TestOrderService_GetOrders(t *testing.T) {
	repo := new(mockOrderRepository)
	svc := CreateNewOrderService(repo, new(mockPublisher), nil)
	ctx := context.Background()

	repo.On("GetOrdersByUserID", ctx, "buyer-b").Return([]domain.Order{}, nil)

	resp, err := svc.GetOrders(ctx, "buyer-b")
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}
