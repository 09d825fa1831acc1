package repository

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"storefront-service/models"

	"go.uber.org/zap"
)

var cartColumns = []string{
	"product_name",
	"original_price",
	"discounted_price",
	"quantity",
}

// CartRepository persists the shopping cart.
type CartRepository interface {
	Load(ctx context.Context) ([]models.CartLine, error)

	// AddOrIncrement adds line to the cart, or bumps the stored quantity when
	// a line with the same product name already exists. The returned bool is
	// true when an existing line was incremented.
	AddOrIncrement(ctx context.Context, line models.CartLine) (models.CartLine, bool, error)
}

// CSVCartRepository stores the cart as a CSV file that is rewritten wholesale
// on every mutation. The read-modify-write is serialized per store path by the
// repository's lock, so concurrent adds for the same product are not lost.
type CSVCartRepository struct {
	path   string
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewCSVCartRepository(path string, logger *zap.Logger) *CSVCartRepository {
	return &CSVCartRepository{path: path, logger: logger}
}

func (r *CSVCartRepository) Load(_ context.Context) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadLocked()
}

func (r *CSVCartRepository) AddOrIncrement(_ context.Context, line models.CartLine) (models.CartLine, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		if err := r.writeLocked(nil); err != nil {
			return models.CartLine{}, false, err
		}
	}

	lines, err := r.loadLocked()
	if err != nil {
		return models.CartLine{}, false, err
	}

	for i := range lines {
		if lines[i].ProductName == line.ProductName {
			lines[i].Quantity += line.Quantity
			if err := r.writeLocked(lines); err != nil {
				return models.CartLine{}, false, err
			}
			return lines[i], true, nil
		}
	}

	lines = append(lines, line)
	if err := r.writeLocked(lines); err != nil {
		return models.CartLine{}, false, err
	}
	return line, false, nil
}

func (r *CSVCartRepository) loadLocked() ([]models.CartLine, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, &IOError{Store: "cart", Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	index, err := readHeader(reader, "cart", cartColumns)
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Store: "cart", Err: err}
		}
		lines = append(lines, models.CartLine{
			ProductName:     row[index["product_name"]],
			OriginalPrice:   row[index["original_price"]],
			DiscountedPrice: row[index["discounted_price"]],
			Quantity:        r.parseQuantity(row[index["quantity"]], row[index["product_name"]]),
		})
	}
	return lines, nil
}

func (r *CSVCartRepository) writeLocked(lines []models.CartLine) error {
	file, err := os.Create(r.path)
	if err != nil {
		return &IOError{Store: "cart", Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(cartColumns); err != nil {
		return &IOError{Store: "cart", Err: err}
	}
	for _, line := range lines {
		record := []string{line.ProductName, line.OriginalPrice, line.DiscountedPrice, strconv.Itoa(line.Quantity)}
		if err := writer.Write(record); err != nil {
			return &IOError{Store: "cart", Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &IOError{Store: "cart", Err: err}
	}
	return nil
}

// parseQuantity tolerates fractional or malformed quantity cells: fractions
// are truncated, anything unparsable is logged and treated as zero so the rest
// of the cart still loads.
func (r *CSVCartRepository) parseQuantity(raw, productName string) int {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return int(f)
	}
	r.logger.Warn("unparsable cart quantity",
		zap.String("product_name", productName),
		zap.String("quantity", raw),
	)
	return 0
}
