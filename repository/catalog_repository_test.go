package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogLoad_OneProductPerRowInOrder(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "analysis.csv",
		"product_name,discount_percentage,current_price,original_price,product_image_url\n"+
			"Nồi chiên,40,599.000₫,999.000₫,https://img.example/a.jpg\n"+
			"Máy xay,25,150.000₫,200.000₫,https://img.example/b.jpg\n")

	repo := repository.NewCSVCatalogRepository(path)
	products, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Nồi chiên", products[0].Name)
	assert.Equal(t, "599.000₫", products[0].CurrentPrice)
	assert.Equal(t, "40", products[0].DiscountPercentage)
	assert.Equal(t, "Máy xay", products[1].Name)
}

func TestCatalogLoad_ColumnOrderDoesNotMatter(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "analysis.csv",
		"product_image_url,product_name,original_price,current_price,discount_percentage\n"+
			"https://img.example/a.jpg,Nồi chiên,999.000₫,599.000₫,40\n")

	repo := repository.NewCSVCatalogRepository(path)
	products, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Nồi chiên", products[0].Name)
	assert.Equal(t, "https://img.example/a.jpg", products[0].ImageURL)
}

func TestCatalogLoad_MissingColumnIsSchemaError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "analysis.csv",
		"product_name,discount_percentage,current_price\n"+
			"Nồi chiên,40,599.000₫\n")

	repo := repository.NewCSVCatalogRepository(path)
	_, err := repo.Load(context.Background())

	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "original_price")
	assert.Contains(t, schemaErr.Missing, "product_image_url")
	assert.Equal(t, 400, repository.StatusFor(err))
}

func TestCatalogLoad_MissingFileIsIOError(t *testing.T) {
	repo := repository.NewCSVCatalogRepository(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := repo.Load(context.Background())

	var ioErr *repository.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 500, repository.StatusFor(err))
}

func TestCatalogLoad_MalformedRowIsIOError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "analysis.csv",
		"product_name,discount_percentage,current_price,original_price,product_image_url\n"+
			"only,two\n")

	repo := repository.NewCSVCatalogRepository(path)
	_, err := repo.Load(context.Background())

	var ioErr *repository.IOError
	require.ErrorAs(t, err, &ioErr)
}
