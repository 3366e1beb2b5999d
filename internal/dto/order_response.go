package dto

type PlaceOrderResponse struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

type OrderItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	Total     float64             `json:"total"`
	CreatedAt int64               `json:"createdAt"`
	Items     []OrderItemResponse `json:"items"`
}
