package population

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/pricing"
)

func testProduct() *catalog.Product {
	return &catalog.Product{SKU: "earbuds-599", Name: "无线耳机", BasePrice: 599, Category: catalog.CategoryDigital}
}

func TestGenerate_Size(t *testing.T) {
	g := New(pricing.NewEngine(nil))

	ds, err := g.Generate(context.Background(), testProduct(), Config{Size: 50, Seed: 1})
	require.NoError(t, err)
	require.Len(t, ds.Rows, 50)
	assert.Equal(t, int64(1), ds.Seed)
	assert.Equal(t, pricing.StrategyInteractive, ds.Strategy)

	// Rows carry sequential ids and priced profiles
	for i, row := range ds.Rows {
		assert.Equal(t, i+1, row.ID)
		require.NotNil(t, row.Profile)
		assert.Greater(t, row.Price, 0.0)
	}
}

func TestGenerate_EmptyAndNegative(t *testing.T) {
	g := New(pricing.NewEngine(nil))

	for _, size := range []int{0, -5} {
		ds, err := g.Generate(context.Background(), testProduct(), Config{Size: size, Seed: 1})
		require.NoError(t, err)
		assert.Empty(t, ds.Rows)
	}
}

func TestGenerate_SeededProfilesAreReproducible(t *testing.T) {
	g := New(pricing.NewEngine(nil))

	a, err := g.Generate(context.Background(), testProduct(), Config{Size: 20, Seed: 42})
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), testProduct(), Config{Size: 20, Seed: 42})
	require.NoError(t, err)

	for i := range a.Rows {
		assert.Equal(t, a.Rows[i].Profile, b.Rows[i].Profile, "row %d", i)
		// Interactive strategy has no randomness, so prices match too
		assert.Equal(t, a.Rows[i].Price, b.Rows[i].Price, "row %d", i)
	}
}

func TestGenerate_PricesMatchEngine(t *testing.T) {
	engine := pricing.NewEngine(nil)
	g := New(engine)

	ds, err := g.Generate(context.Background(), testProduct(), Config{Size: 10, Seed: 7, Strategy: pricing.StrategyInteractive})
	require.NoError(t, err)

	for _, row := range ds.Rows {
		quote, err := engine.Quote(context.Background(), testProduct(), row.Profile, pricing.StrategyInteractive)
		require.NoError(t, err)
		assert.Equal(t, quote.FinalPrice, row.Price)
	}
}

func TestGenerate_RespectsCancellation(t *testing.T) {
	g := New(pricing.NewEngine(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, testProduct(), Config{Size: 100, Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_HistoryWithinCatalog(t *testing.T) {
	g := New(pricing.NewEngine(nil))

	ds, err := g.Generate(context.Background(), testProduct(), Config{Size: 100, Seed: 3})
	require.NoError(t, err)

	known := map[string]bool{}
	for _, c := range catalog.Categories() {
		known[c] = true
	}
	for _, row := range ds.Rows {
		require.LessOrEqual(t, len(row.Profile.HistoryCategories), historyMaxCategories)
		for _, c := range row.Profile.HistoryCategories {
			assert.True(t, known[c], "unknown category %s", c)
		}
	}
}
