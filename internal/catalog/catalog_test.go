package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	products, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 4)

	// Order is stable and matches insertion
	assert.Equal(t, "sneakers-199", products[0].SKU)
	assert.Equal(t, "laptop-4999", products[3].SKU)

	for _, p := range products {
		assert.Greater(t, p.BasePrice, 0.0)
		assert.NotEmpty(t, p.Category)
	}
}

func TestMemoryStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, err := store.Get(ctx, "earbuds-599")
	require.NoError(t, err)
	assert.Equal(t, "无线耳机", p.Name)
	assert.Equal(t, 599.0, p.BasePrice)
	assert.Equal(t, CategoryDigital, p.Category)

	_, err = store.Get(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, _ := store.Get(ctx, "earbuds-599")
	p.BasePrice = 1

	again, _ := store.Get(ctx, "earbuds-599")
	assert.Equal(t, 599.0, again.BasePrice)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 5)
	assert.Contains(t, cats, CategoryDigital)
	assert.Contains(t, cats, CategoryApparel)
}
