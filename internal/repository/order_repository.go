package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/rs/zerolog/log"
)

const orderColumns = "id, user_id, status, total, created_at"

type OrderRepositoryImpl struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func CreateNewOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db, q: db}
}

func (r *OrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(ctx, &OrderRepositoryImpl{db: r.db, q: tx})
	})
}

// GetProductsForUpdate locks the requested product rows in id order so that
// concurrent orders over overlapping products cannot deadlock.
func (r *OrderRepositoryImpl) GetProductsForUpdate(ctx context.Context, ids []string) (data map[string]domain.Product, err error) {
	var products []domain.Product
	err = sqlx.SelectContext(ctx, r.q, &products, "SELECT "+productColumns+" FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE", pq.Array(ids))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsForUpdate").Msg("")
		return nil, errs.ErrInternalServer
	}

	data = make(map[string]domain.Product, len(products))
	for _, p := range products {
		data[p.ID] = p
	}

	return data, nil
}

func (r *OrderRepositoryImpl) DecreaseProductStock(ctx context.Context, productID string, quantity int64) (err error) {
	result, err := r.q.ExecContext(ctx, "UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1", quantity, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecreaseProductStock").Msg("")
		return errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DecreaseProductStock").Msg("")
		return errs.ErrInternalServer
	}

	if affected == 0 {
		return errs.NewProductError(productID, errs.ErrInsufficientStock)
	}

	return nil
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (err error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixMilli()
	}

	_, err = sqlx.NamedExecContext(ctx, r.q, "INSERT INTO orders(id, user_id, status, total, created_at) VALUES (:id, :user_id, :status, :total, :created_at)", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *OrderRepositoryImpl) AddOrderItems(ctx context.Context, data []domain.OrderItem) (err error) {
	if len(data) == 0 {
		return nil
	}

	_, err = sqlx.NamedExecContext(ctx, r.q, "INSERT INTO order_items(id, order_id, product_id, quantity, price) VALUES (:id, :order_id, :product_id, :quantity, :price)", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrderItems").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *OrderRepositoryImpl) GetOrderByID(ctx context.Context, id string, userID string) (data domain.Order, err error) {
	err = sqlx.GetContext(ctx, r.q, &data, "SELECT "+orderColumns+" FROM orders WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, errs.ErrOrderNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return data, errs.ErrInternalServer
	}

	orders := []domain.Order{data}
	if err = r.attachItems(ctx, orders); err != nil {
		return data, err
	}

	return orders[0], nil
}

func (r *OrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID string) (data []domain.Order, err error) {
	data = []domain.Order{}
	err = sqlx.SelectContext(ctx, r.q, &data, "SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id", userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUserID").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = r.attachItems(ctx, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	var items []domain.OrderItem
	err := sqlx.SelectContext(ctx, r.q, &items, "SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = ANY($1) ORDER BY id", pq.Array(ids))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "attachItems").Msg("")
		return errs.ErrInternalServer
	}

	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}

	return nil
}
