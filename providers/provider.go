package providers

import (
	"context"

	"storefront-service/models"
)

// PaymentProvider defines the interface payment-gateway integrations must
// implement.
type PaymentProvider interface {
	// CreatePaymentLink registers a payment with the gateway and returns the
	// checkout URL the buyer should be redirected to.
	CreatePaymentLink(ctx context.Context, req models.PaymentRequest) (string, error)
}
