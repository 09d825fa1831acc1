package models

// CartLine is one aggregated cart row: at most one line exists per product
// name, and repeated adds bump Quantity instead of appending.
type CartLine struct {
	ProductName     string `json:"product_name"`
	OriginalPrice   string `json:"original_price"`
	DiscountedPrice string `json:"discounted_price"`
	Quantity        int    `json:"quantity"`
}

// AddItemRequest is the JSON body of POST /addshoppingcart.
type AddItemRequest struct {
	ProductName     string `json:"productName" binding:"required"`
	OriginalPrice   string `json:"originalPrice"`
	DiscountedPrice string `json:"discountedPrice"`
	Quantity        int    `json:"quantity"`
}

// StorefrontView is the view model rendered by GET /.
type StorefrontView struct {
	Products    []Product
	Cart        []CartLine
	TotalAmount float64
	ItemCount   int
}
