package domain

type Product struct {
	ID          string  `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Category    string  `db:"category"`
	SellerID    string  `db:"seller_id"`
	Stock       int64   `db:"stock"`
	CreatedAt   int64   `db:"created_at"`
	Images      []ProductImage
}

type ProductImage struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	URL       string `db:"url"`
	CreatedAt int64  `db:"created_at"`
}
