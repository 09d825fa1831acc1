package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront-service/models"
	"storefront-service/providers"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// The gateway rejects descriptions longer than 25 characters.
const maxDescriptionLen = 25

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// CheckoutService assembles payment requests and exchanges them for gateway
// checkout URLs.
type CheckoutService interface {
	// PayProduct creates a payment link for a single ad-hoc product, quantity 1.
	PayProduct(ctx context.Context, form models.SinglePaymentForm) (string, *ServiceError)

	// CheckoutCart creates a payment link covering the whole persisted cart.
	CheckoutCart(ctx context.Context, buyer models.Buyer) (string, *ServiceError)
}

type checkoutServiceImpl struct {
	carts      repository.CartRepository
	provider   providers.PaymentProvider
	orderCodes *OrderCodeSource
	webDomain  string // both cancel and return URL
	logger     *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	carts repository.CartRepository,
	provider providers.PaymentProvider,
	webDomain string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:      carts,
		provider:   provider,
		orderCodes: NewOrderCodeSource(),
		webDomain:  webDomain,
		logger:     logger,
	}
}

func (s *checkoutServiceImpl) PayProduct(ctx context.Context, form models.SinglePaymentForm) (string, *ServiceError) {
	price, err := strconv.ParseFloat(strings.TrimSpace(form.CurrentPrice), 64)
	if err != nil {
		return "", &ServiceError{StatusCode: 400, Message: "invalid current_price: " + form.CurrentPrice}
	}
	// Fractional input is truncated toward zero; the gateway only accepts
	// integer currency units.
	amount := int(price)

	req := models.PaymentRequest{
		OrderCode:   s.orderCodes.Next(),
		Amount:      amount,
		Description: buildDescription(form.Buyer, form.ProductName),
		BuyerName:   form.Buyer.Name,
		BuyerEmail:  form.Buyer.Email,
		BuyerPhone:  form.Buyer.Phone,
		Items: []models.PaymentItem{
			{Name: form.ProductName, Quantity: 1, Price: amount},
		},
		CancelURL: s.webDomain,
		ReturnURL: s.webDomain,
	}

	return s.createLink(ctx, req)
}

func (s *checkoutServiceImpl) CheckoutCart(ctx context.Context, buyer models.Buyer) (string, *ServiceError) {
	lines, err := s.carts.Load(ctx)
	if err != nil {
		return "", &ServiceError{StatusCode: repository.StatusFor(err), Message: err.Error()}
	}

	var items []models.PaymentItem
	total := 0
	for _, line := range lines {
		price, perr := ParsePrice(line.DiscountedPrice)
		if perr != nil || line.Quantity < 1 {
			s.logger.Warn("skipping cart line at checkout",
				zap.String("product_name", line.ProductName),
				zap.String("discounted_price", line.DiscountedPrice),
				zap.Int("quantity", line.Quantity),
			)
			continue
		}
		item := models.PaymentItem{
			Name:     line.ProductName,
			Quantity: line.Quantity,
			Price:    int(price),
		}
		items = append(items, item)
		total += item.Price * item.Quantity
	}
	if len(items) == 0 {
		return "", &ServiceError{StatusCode: 400, Message: "cart is empty"}
	}

	req := models.PaymentRequest{
		OrderCode:   s.orderCodes.Next(),
		Amount:      total,
		Description: buildDescription(buyer, "Checkout"),
		BuyerName:   buyer.Name,
		BuyerEmail:  buyer.Email,
		BuyerPhone:  buyer.Phone,
		Items:       items,
		CancelURL:   s.webDomain,
		ReturnURL:   s.webDomain,
	}

	return s.createLink(ctx, req)
}

// createLink calls the gateway. Failures carry the raw provider error text;
// there is no retry.
func (s *checkoutServiceImpl) createLink(ctx context.Context, req models.PaymentRequest) (string, *ServiceError) {
	url, err := s.provider.CreatePaymentLink(ctx, req)
	if err != nil {
		s.logger.Error("payment link creation failed",
			zap.Int64("order_code", req.OrderCode),
			zap.Error(err),
		)
		return "", &ServiceError{StatusCode: 502, Message: err.Error()}
	}
	s.logger.Info("payment link created",
		zap.Int64("order_code", req.OrderCode),
		zap.Int("amount", req.Amount),
		zap.Int("items", len(req.Items)),
	)
	return url, nil
}

// buildDescription joins buyer name, phone and the product name (or the
// literal "Checkout" for full-cart payments), truncated to the first 25
// characters with no word-boundary logic.
func buildDescription(buyer models.Buyer, name string) string {
	raw := fmt.Sprintf("%s-%s-%s", buyer.Name, buyer.Phone, name)
	runes := []rune(raw)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen])
	}
	return raw
}
