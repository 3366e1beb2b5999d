package dto

// ProductRequest binds from JSON or multipart form fields. ImageURLs is only
// read from JSON bodies; multipart uploads are passed alongside as files.
type ProductRequest struct {
	ID          string   `json:"-" form:"-"`
	SellerID    string   `json:"-" form:"-"`
	Title       string   `json:"title" form:"title" validate:"required,min=3"`
	Description string   `json:"description" form:"description" validate:"required,min=10"`
	Price       float64  `json:"price" form:"price" validate:"gt=0"`
	Category    string   `json:"category" form:"category" validate:"required"`
	Stock       int64    `json:"stock" form:"stock" validate:"gte=0"`
	ImageURLs   []string `json:"images" form:"-" validate:"dive,required"`
}
