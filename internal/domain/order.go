package domain

const OrderStatusPending = "pending"

type Order struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Status    string  `db:"status"`
	Total     float64 `db:"total"`
	CreatedAt int64   `db:"created_at"`
	Items     []OrderItem
}

// OrderItem.Price is the unit price captured when the order was placed.
type OrderItem struct {
	ID        string  `db:"id"`
	OrderID   string  `db:"order_id"`
	ProductID string  `db:"product_id"`
	Quantity  int64   `db:"quantity"`
	Price     float64 `db:"price"`
}
