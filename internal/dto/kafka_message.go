package dto

const (
	EventUserRegistered = "user_registered"
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventOrderPlaced    = "order_placed"
)

type KafkaMessage struct {
	EventType  string      `json:"event_type"`
	OccurredAt int64       `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	IsSeller bool   `json:"is_artisan"`
}

type ProductEvent struct {
	ProductID string  `json:"product_id"`
	SellerID  string  `json:"artisan_id"`
	Title     string  `json:"title,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Stock     int64   `json:"stock,omitempty"`
}

type OrderPlacedEvent struct {
	OrderID string              `json:"order_id"`
	UserID  string              `json:"user_id"`
	Total   float64             `json:"total"`
	Items   []OrderItemResponse `json:"items"`
}
