package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/population"
	"github.com/mkwei/pricelens/internal/pricing"
	"github.com/mkwei/pricelens/internal/profile"
)

// maxPopulationSize bounds generate_population requests.
const maxPopulationSize = 1000

// Handlers holds the handler functions for each MCP tool. The engine runs
// in-process; there is no network hop.
type Handlers struct {
	catalog   catalog.Store
	engine    *pricing.Engine
	generator *population.Generator
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cat catalog.Store, engine *pricing.Engine) *Handlers {
	return &Handlers{
		catalog:   cat,
		engine:    engine,
		generator: population.New(engine),
	}
}

// HandleListProducts lists the demo catalog.
func (h *Handlers) HandleListProducts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	products, err := h.catalog.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list products: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Catalog (%d products):\n\n", len(products))
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s: %s, ¥%.2f, category %s\n", p.SKU, p.Name, p.BasePrice, p.Category)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// HandleComputeQuote prices one profile against one product.
func (h *Handlers) HandleComputeQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sku := req.GetString("sku", "")
	if sku == "" {
		return mcp.NewToolResultError("sku is required"), nil
	}

	product, err := h.catalog.Get(ctx, sku)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown product %q; use list_products first", sku)), nil
	}

	p := profileFromRequest(req)
	strategy := req.GetString("strategy", "")

	quote, err := h.engine.Quote(ctx, product, p, strategy)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownStrategy) {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown strategy %q", strategy)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Quote failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatQuote(product, quote)), nil
}

// HandleGeneratePopulation prices a synthetic population and summarizes it.
func (h *Handlers) HandleGeneratePopulation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sku := req.GetString("sku", "")
	if sku == "" {
		return mcp.NewToolResultError("sku is required"), nil
	}

	product, err := h.catalog.Get(ctx, sku)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown product %q; use list_products first", sku)), nil
	}

	n := req.GetInt("n", population.DefaultSize)
	if n < 0 {
		n = 0
	}
	if n > maxPopulationSize {
		return mcp.NewToolResultError(fmt.Sprintf("n must be at most %d", maxPopulationSize)), nil
	}

	cfg := population.Config{
		Size:     n,
		Seed:     int64(req.GetInt("seed", 0)),
		Strategy: req.GetString("strategy", ""),
	}

	ds, err := h.generator.Generate(ctx, product, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatPopulation(product, ds)), nil
}

// profileFromRequest builds a canonical profile from tool arguments, filling
// every omitted attribute with its neutral default.
func profileFromRequest(req mcp.CallToolRequest) *profile.Profile {
	p := profile.Default()

	if v := req.GetString("user_type", ""); v != "" {
		p.UserType = profile.UserType(v)
	}
	if v := req.GetFloat("spending_amount", profile.DefaultSpendingAmount); v > 0 {
		p.SpendingScore = profile.SpendingScore(v)
		p.SpendingLevel = spendingLevelFromScore(p.SpendingScore)
	}
	if v := req.GetString("device", ""); v != "" {
		p.Device = profile.Device(v)
	}
	if v := req.GetInt("activity_score", 50); v >= 0 {
		p.ActivityScore = v
		p.Activity = activityLevelFromScore(v)
	}
	if v := req.GetString("frequency", ""); v != "" {
		p.Frequency = profile.Frequency(v)
	}
	if v := req.GetString("vip_level", ""); v != "" {
		p.VIPLevel = profile.VIPLevel(v)
	}
	if v := req.GetString("return_rate", ""); v != "" {
		p.ReturnRate = profile.Level(v)
	}
	if v := req.GetString("period", ""); v != "" {
		p.PurchasePeriod = profile.Period(v)
	}
	p.HasCoupon = req.GetBool("has_coupon", false)
	p.HasSimilarInCart = req.GetBool("has_similar_in_cart", false)

	if raw := req.GetString("history_categories", ""); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				p.HistoryCategories = append(p.HistoryCategories, c)
			}
		}
	}

	return p
}

func spendingLevelFromScore(score int) profile.Level {
	switch {
	case score <= 30:
		return profile.LevelLow
	case score <= 75:
		return profile.LevelMedium
	default:
		return profile.LevelHigh
	}
}

func activityLevelFromScore(score int) profile.Level {
	switch {
	case score < 25:
		return profile.LevelLow
	case score < 75:
		return profile.LevelMedium
	default:
		return profile.LevelHigh
	}
}

func formatQuote(product *catalog.Product, quote *pricing.Quote) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s (%s)\n", product.Name, product.SKU)
	fmt.Fprintf(&sb, "Strategy: %s\n", quote.Strategy)
	fmt.Fprintf(&sb, "Base price: ¥%.2f\n", quote.BasePrice)
	fmt.Fprintf(&sb, "Final price: ¥%.2f (%+.1f%%)\n\n", quote.FinalPrice, quote.DeltaPercent())

	sb.WriteString("Adjustments:\n")
	for _, adj := range quote.Adjustments {
		fmt.Fprintf(&sb, "- [%s] %s: %+.2f (%s)\n", adj.Rule, adj.Label, adj.Delta, adj.Kind)
	}

	return sb.String()
}

func formatPopulation(product *catalog.Product, ds *population.Dataset) string {
	summary := population.Summarize(ds)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Population of %d shoppers priced for %s (%s), strategy %s, seed %d\n\n",
		summary.Count, product.Name, product.SKU, ds.Strategy, ds.Seed)
	fmt.Fprintf(&sb, "Base price: ¥%.2f\n", product.BasePrice)
	fmt.Fprintf(&sb, "Mean: ¥%.2f  Std: %.2f  Median: ¥%.2f\n", summary.Mean, summary.Std, summary.Median)
	fmt.Fprintf(&sb, "Min: ¥%.2f  Max: ¥%.2f  Spread: ¥%.2f\n\n", summary.Min, summary.Max, summary.Spread)

	if summary.Count > 0 {
		sb.WriteString("Distribution:\n")
		for _, bin := range summary.Histogram {
			fmt.Fprintf(&sb, "¥%.2f - ¥%.2f: %s (%d)\n",
				bin.Low, bin.High, strings.Repeat("#", bin.Count), bin.Count)
		}
	}

	return sb.String()
}
