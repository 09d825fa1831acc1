package models

// Product is one row of the flash-sale catalog. Price columns are carried as
// the raw CSV strings (often currency-formatted, e.g. "10.000₫"); parsing
// happens at the point of use.
type Product struct {
	Name               string `json:"product_name"`
	DiscountPercentage string `json:"discount_percentage"`
	CurrentPrice       string `json:"current_price"`
	OriginalPrice      string `json:"original_price"`
	ImageURL           string `json:"product_image_url"`
}
