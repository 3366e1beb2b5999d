package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/repository"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/validator"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

type OrderServiceImpl struct {
	repo      repository.OrderRepository
	publisher EventPublisher
	notifier  OrderNotifier
}

// CreateNewOrderService accepts a nil notifier when mail is not configured.
func CreateNewOrderService(repo repository.OrderRepository, publisher EventPublisher, notifier OrderNotifier) OrderService {
	return &OrderServiceImpl{repo: repo, publisher: publisher, notifier: notifier}
}

// PlaceOrder validates the whole cart against locked product rows, then writes
// the order, its items and the stock decrements in one transaction. Nothing is
// persisted unless every line can be fulfilled.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, req dto.OrderRequest) (resp dto.PlaceOrderResponse, err error) {
	if err = validator.Struct(req); err != nil {
		return
	}

	demand, productIDs, err := aggregateDemand(req.Items)
	if err != nil {
		return
	}

	order := domain.Order{
		ID:        ulid.Make().String(),
		UserID:    req.UserID,
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UnixMilli(),
	}

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		products, err := repo.GetProductsForUpdate(ctx, productIDs)
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			if _, ok := products[item.ProductID]; !ok {
				return errs.NewProductError(item.ProductID, errs.ErrOrderProductNotFound)
			}
		}

		for _, item := range req.Items {
			if products[item.ProductID].Stock < demand[item.ProductID] {
				return errs.NewProductError(item.ProductID, errs.ErrInsufficientStock)
			}
		}

		order.Items = make([]domain.OrderItem, len(req.Items))
		var total float64
		for i, item := range req.Items {
			price := products[item.ProductID].Price
			order.Items[i] = domain.OrderItem{
				ID:        ulid.Make().String(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     price,
			}
			total += price * float64(item.Quantity)
		}
		order.Total = roundCents(total)

		if err := repo.AddOrder(ctx, order); err != nil {
			return err
		}

		if err := repo.AddOrderItems(ctx, order.Items); err != nil {
			return err
		}

		for _, id := range productIDs {
			if err := repo.DecreaseProductStock(ctx, id, demand[id]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return
	}

	log.Ctx(ctx).Info().Str("component", "PlaceOrder").Str("order_id", order.ID).Float64("total", order.Total).Msg("order placed")

	s.afterOrderPlaced(ctx, req.UserEmail, order)

	resp.ID = order.ID
	resp.Total = order.Total

	return
}

// aggregateDemand sums quantities per product, so a product listed twice is
// checked against its combined demand. The ids come back sorted, which is the
// order rows are locked in.
func aggregateDemand(items []dto.OrderItem) (map[string]int64, []string, error) {
	demand := make(map[string]int64, len(items))
	for _, item := range items {
		if item.Quantity > math.MaxInt64-demand[item.ProductID] {
			return nil, nil, errs.NewProductError(item.ProductID, errs.ErrInsufficientStock)
		}
		demand[item.ProductID] += item.Quantity
	}

	productIDs := make([]string, 0, len(demand))
	for id := range demand {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	return demand, productIDs, nil
}

func (s *OrderServiceImpl) afterOrderPlaced(ctx context.Context, email string, order domain.Order) {
	event := dto.OrderPlacedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Items:   orderItemResponses(order.Items),
	}

	s.publisher.Publish(ctx, dto.EventOrderPlaced, order.ID, event)

	if s.notifier == nil || email == "" {
		return
	}

	if err := s.notifier.SendOrderConfirmation(ctx, email, event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "PlaceOrder").Str("order_id", order.ID).Msg("confirmation mail not sent")
	}
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, userID string) (resp []dto.OrderResponse, err error) {
	orders, err := s.repo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return
	}

	resp = make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, orderResponse(order))
	}

	return
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id string, userID string) (resp dto.OrderResponse, err error) {
	order, err := s.repo.GetOrderByID(ctx, id, userID)
	if err != nil {
		return
	}

	return orderResponse(order), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func orderItemResponses(items []domain.OrderItem) []dto.OrderItemResponse {
	resp := make([]dto.OrderItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}

func orderResponse(order domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		Items:     orderItemResponses(order.Items),
	}
}
