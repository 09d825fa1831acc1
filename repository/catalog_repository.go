package repository

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"storefront-service/models"
)

var catalogColumns = []string{
	"product_name",
	"discount_percentage",
	"current_price",
	"original_price",
	"product_image_url",
}

// CatalogRepository loads the flash-sale product catalog.
type CatalogRepository interface {
	Load(ctx context.Context) ([]models.Product, error)
}

// CSVCatalogRepository reads the catalog from a CSV file with a header row.
// The file is re-read on every call; an external producer owns it.
type CSVCatalogRepository struct {
	path string
}

func NewCSVCatalogRepository(path string) *CSVCatalogRepository {
	return &CSVCatalogRepository{path: path}
}

// Load returns one Product per data row, in source order.
func (r *CSVCatalogRepository) Load(_ context.Context) ([]models.Product, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, &IOError{Store: "catalog", Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	index, err := readHeader(reader, "catalog", catalogColumns)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Store: "catalog", Err: err}
		}
		products = append(products, models.Product{
			Name:               row[index["product_name"]],
			DiscountPercentage: row[index["discount_percentage"]],
			CurrentPrice:       row[index["current_price"]],
			OriginalPrice:      row[index["original_price"]],
			ImageURL:           row[index["product_image_url"]],
		})
	}
	return products, nil
}

// readHeader reads the header row and builds a column-index map, so column
// order in the file does not matter. Missing required columns are a
// SchemaError.
func readHeader(reader *csv.Reader, store string, required []string) (map[string]int, error) {
	headers, err := reader.Read()
	if err != nil {
		return nil, &IOError{Store: store, Err: err}
	}

	index := make(map[string]int)
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Store: store, Missing: missing}
	}
	return index, nil
}
