package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartRepo(t *testing.T, path string) *repository.CSVCartRepository {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	return repository.NewCSVCartRepository(path, logger)
}

func cartLine(name string, qty int) models.CartLine {
	return models.CartLine{
		ProductName:     name,
		OriginalPrice:   "200.000₫",
		DiscountedPrice: "150.000₫",
		Quantity:        qty,
	}
}

func TestAddOrIncrement_CreatesStoreWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoppingcart.csv")
	repo := newCartRepo(t, path)

	_, incremented, err := repo.AddOrIncrement(context.Background(), cartLine("Nồi chiên", 1))
	require.NoError(t, err)
	assert.False(t, incremented)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "product_name,original_price,discounted_price,quantity\n"))
}

func TestAddOrIncrement_SameProductMergesIntoOneLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoppingcart.csv")
	repo := newCartRepo(t, path)
	ctx := context.Background()

	_, _, err := repo.AddOrIncrement(ctx, cartLine("Nồi chiên", 1))
	require.NoError(t, err)

	line, incremented, err := repo.AddOrIncrement(ctx, cartLine("Nồi chiên", 2))
	require.NoError(t, err)
	assert.True(t, incremented)
	assert.Equal(t, 3, line.Quantity)

	lines, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddOrIncrement_DistinctProductsPreserveInsertionOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoppingcart.csv")
	repo := newCartRepo(t, path)
	ctx := context.Background()

	_, _, err := repo.AddOrIncrement(ctx, cartLine("Nồi chiên", 1))
	require.NoError(t, err)
	_, _, err = repo.AddOrIncrement(ctx, cartLine("Máy xay", 1))
	require.NoError(t, err)

	lines, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Nồi chiên", lines[0].ProductName)
	assert.Equal(t, "Máy xay", lines[1].ProductName)
}

func TestAddOrIncrement_ConcurrentAddsAreNotLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoppingcart.csv")
	repo := newCartRepo(t, path)

	const adds = 20
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.AddOrIncrement(context.Background(), cartLine("Nồi chiên", 1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, adds, lines[0].Quantity)
}

func TestCartLoad_MissingFileIsIOError(t *testing.T) {
	repo := newCartRepo(t, filepath.Join(t.TempDir(), "shoppingcart.csv"))
	_, err := repo.Load(context.Background())

	var ioErr *repository.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 500, repository.StatusFor(err))
}

func TestCartLoad_MissingColumnIsSchemaError(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "shoppingcart.csv",
		"product_name,original_price,quantity\n"+
			"Nồi chiên,200.000₫,1\n")

	repo := newCartRepo(t, path)
	_, err := repo.Load(context.Background())

	var schemaErr *repository.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"discounted_price"}, schemaErr.Missing)
}

func TestCartLoad_FractionalQuantityIsTruncated(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "shoppingcart.csv",
		"product_name,original_price,discounted_price,quantity\n"+
			"Nồi chiên,200.000₫,150.000₫,2.7\n")

	repo := newCartRepo(t, path)
	lines, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartLoad_UnparsableQuantityKeepsLineWithZero(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "shoppingcart.csv",
		"product_name,original_price,discounted_price,quantity\n"+
			"Nồi chiên,200.000₫,150.000₫,many\n"+
			"Máy xay,200.000₫,150.000₫,1\n")

	repo := newCartRepo(t, path)
	lines, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}
