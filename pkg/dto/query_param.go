package dto

// Filter narrows product listings. Zero values mean "no restriction"; pagination
// applies only when both Limit and Page are set. The bounds keep the computed
// offset well inside the range of an int.
type Filter struct {
	Limit    int    `query:"limit" validate:"gte=0,lte=100"`
	Page     int    `query:"page" validate:"gte=0,lte=1000000"`
	Category string `query:"category"`
	SellerID string `query:"seller_id"`
}
