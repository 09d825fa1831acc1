package services

import (
	"fmt"
	"strconv"
	"strings"

	"storefront-service/models"

	"go.uber.org/zap"
)

// ParsePrice parses a currency-formatted price string such as "10.000₫":
// the đồng symbol and thousands-separator dots are stripped before parsing.
func ParsePrice(s string) (float64, error) {
	cleaned := strings.ReplaceAll(s, "₫", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price %q", s)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return value, nil
}

// CartTotal sums discounted price × quantity across the cart. A line whose
// price cannot be parsed is logged and skipped; the total proceeds over the
// remaining lines.
func CartTotal(lines []models.CartLine, logger *zap.Logger) float64 {
	var total float64
	for _, line := range lines {
		price, err := ParsePrice(line.DiscountedPrice)
		if err != nil {
			logger.Warn("skipping cart line with unparsable price",
				zap.String("product_name", line.ProductName),
				zap.String("discounted_price", line.DiscountedPrice),
				zap.Error(err),
			)
			continue
		}
		total += price * float64(line.Quantity)
	}
	return total
}
