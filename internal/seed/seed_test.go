package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/inventory"
	"stockroom/pkg/logger"
)

const sample = `
items:
  - id: "1"
    name: Laptop
    category: electronics
    quantity: 5
    price: 1000.10
    supplier: SupplierA
    status: In Stock
    popular: true
    comment: Good item
  - id: "2"
    name: Mouse
    category: Electronics
    quantity: 0
    price: 0
    supplier: SupplierB
    status: out of stock
    popular: false
`

func TestParse(t *testing.T) {
	drafts, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	laptop := drafts[0]
	assert.Equal(t, "1", laptop.ID)
	assert.Equal(t, inventory.CategoryElectronics, laptop.Category)
	require.NotNil(t, laptop.Quantity)
	assert.Equal(t, 5, *laptop.Quantity)
	require.NotNil(t, laptop.Price)
	assert.True(t, types.MustMoney("1000.10").Equal(*laptop.Price))
	require.NotNil(t, laptop.Comment)
	assert.Equal(t, "Good item", *laptop.Comment)

	mouse := drafts[1]
	assert.Equal(t, inventory.StatusOutOfStock, mouse.Status)
	require.NotNil(t, mouse.Popular)
	assert.False(t, *mouse.Popular)
	assert.Nil(t, mouse.Comment)
}

func TestParse_Empty(t *testing.T) {
	drafts, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestParse_MissingKeysStayUnset(t *testing.T) {
	drafts, err := Parse(strings.NewReader("items:\n  - id: \"9\"\n    name: Hammer\n"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Nil(t, d.Quantity)
	assert.Nil(t, d.Price)
	assert.Nil(t, d.Popular)
	assert.Empty(t, d.Category)
}

func TestParse_InvalidCategoryNamesIndex(t *testing.T) {
	doc := sample + `
  - id: "3"
    name: Apple
    category: Food
`
	_, err := Parse(strings.NewReader(doc))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Equal(t, 2, appErr.Details["index"])
	assert.Equal(t, "category", appErr.Details["field"])
}

func TestParse_RejectsUnknownKeysAndBadPrice(t *testing.T) {
	_, err := Parse(strings.NewReader("items:\n  - id: \"1\"\n    colour: red\n"))
	assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

	_, err = Parse(strings.NewReader("items:\n  - id: \"1\"\n    price: cheap\n"))
	assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(logger.NewNop())

	n, err := Load(ctx, svc, strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, svc.Count())

	item, err := svc.FindByName(ctx, "laptop")
	require.NoError(t, err)
	assert.Equal(t, "$1000.10", "$"+types.FormatPrice(item.Price))
}

func TestLoad_StopsAtFirstRejectedItem(t *testing.T) {
	ctx := context.Background()
	svc := inventory.NewService(logger.NewNop())
	doc := sample + `
  - id: "1"
    name: Duplicate
    category: Tools
    quantity: 1
    price: 1
    supplier: S
    status: In Stock
    popular: false
  - id: "4"
    name: Never
    category: Tools
    quantity: 1
    price: 1
    supplier: S
    status: In Stock
    popular: false
`
	n, err := Load(ctx, svc, strings.NewReader(doc))

	assert.True(t, inventory.IsDuplicateID(err))
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, svc.Count())
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, 2, appErr.Details["index"])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	svc := inventory.NewService(logger.NewNop())
	n, err := LoadFile(context.Background(), svc, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = LoadFile(context.Background(), svc, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
