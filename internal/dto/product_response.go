package dto

type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	SellerID    string   `json:"artisanId"`
	Stock       int64    `json:"stock"`
	Images      []string `json:"images"`
	CreatedAt   int64    `json:"createdAt"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}
