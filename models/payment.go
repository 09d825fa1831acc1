package models

// Buyer holds the identity fields the payment gateway attaches to a checkout.
type Buyer struct {
	Name  string
	Email string
	Phone string
}

// PaymentItem is one line item of a payment request. Price is an integer
// currency unit (VND has no fractional unit).
type PaymentItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// PaymentRequest is the payload sent to the payment gateway to create a
// checkout link. It is transient: built per request, never persisted.
// OrderCode must be unique per request; the gateway uses it as a dedup key.
type PaymentRequest struct {
	OrderCode   int64         `json:"orderCode"`
	Amount      int           `json:"amount"`
	Description string        `json:"description"` // gateway caps this at 25 characters
	BuyerName   string        `json:"buyerName"`
	BuyerEmail  string        `json:"buyerEmail"`
	BuyerPhone  string        `json:"buyerPhone"`
	Items       []PaymentItem `json:"items"`
	CancelURL   string        `json:"cancelUrl"`
	ReturnURL   string        `json:"returnUrl"`
}

// SinglePaymentForm carries the POST /payment form fields for a one-product
// payment link.
type SinglePaymentForm struct {
	ProductName  string
	CurrentPrice string
	Buyer        Buyer
}
