package dto

type OrderItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0,lte=10000"`
}

type OrderRequest struct {
	UserID    string      `json:"-"`
	UserEmail string      `json:"-"`
	Items     []OrderItem `json:"items" validate:"required,min=1,dive"`
}
