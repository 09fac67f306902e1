package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the pricelens MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolListProducts = mcp.NewTool("list_products",
	mcp.WithDescription(
		"List the demo products in the simulator catalog. "+
			"Returns SKU, name, base price, and category for each product. "+
			"Use this to find a SKU before computing quotes."),
)

var ToolComputeQuote = mcp.NewTool("compute_quote",
	mcp.WithDescription(
		"Compute a personalized price quote for one user profile against a catalog product. "+
			"Returns the final price and the full adjustment audit trail showing which "+
			"pricing rules fired and what each one added or subtracted. "+
			"This is an educational simulator: it demonstrates how e-commerce platforms "+
			"charge different users different prices."),
	mcp.WithString("sku",
		mcp.Required(),
		mcp.Description("Product SKU from list_products (e.g. 'earbuds-599')")),
	mcp.WithString("strategy",
		mcp.Description("Pricing strategy: 'interactive' (additive per-rule deltas, default) or 'multiplicative' (compounding factors with jitter)"),
		mcp.Enum("interactive", "multiplicative")),
	mcp.WithString("user_type",
		mcp.Description("User tenure: 'new', 'regular', or 'loyal' (default regular)"),
		mcp.Enum("new", "regular", "loyal")),
	mcp.WithNumber("spending_amount",
		mcp.Description("Historical spending in yuan; mapped to a 10-90 spending score (default 1000)")),
	mcp.WithString("device",
		mcp.Description("Device platform: 'android' or 'ios' (default android)"),
		mcp.Enum("android", "ios")),
	mcp.WithNumber("activity_score",
		mcp.Description("Activity score 0-100 (default 50)")),
	mcp.WithString("frequency",
		mcp.Description("Purchase frequency: 'rare', 'sometimes', or 'often' (default sometimes)"),
		mcp.Enum("rare", "sometimes", "often")),
	mcp.WithString("vip_level",
		mcp.Description("VIP tier: 'none', 'medium', or 'high' (default none)"),
		mcp.Enum("none", "medium", "high")),
	mcp.WithString("return_rate",
		mcp.Description("Historical return rate: 'low', 'medium', or 'high' (default medium)"),
		mcp.Enum("low", "medium", "high")),
	mcp.WithString("period",
		mcp.Description("Purchase period: 'normal' or 'special' (promotional season, default normal)"),
		mcp.Enum("normal", "special")),
	mcp.WithBoolean("has_coupon",
		mcp.Description("Whether the user holds a coupon (informational, never changes the price)")),
	mcp.WithBoolean("has_similar_in_cart",
		mcp.Description("Whether the user's cart already holds a similar item")),
	mcp.WithString("history_categories",
		mcp.Description("Comma-separated browsing history categories (e.g. '数码,服饰')")),
)

var ToolGeneratePopulation = mcp.NewTool("generate_population",
	mcp.WithDescription(
		"Generate a synthetic population of shoppers and price one product for each of them. "+
			"Returns distribution statistics (mean, spread, min/max, histogram) showing how "+
			"widely the personalized prices vary across users. "+
			"Pass a seed to get a reproducible population."),
	mcp.WithString("sku",
		mcp.Required(),
		mcp.Description("Product SKU from list_products (e.g. 'sneakers-199')")),
	mcp.WithNumber("n",
		mcp.Description("Population size (default 50, max 1000)")),
	mcp.WithNumber("seed",
		mcp.Description("Random seed for reproducible runs (0 or omitted = time-seeded)")),
	mcp.WithString("strategy",
		mcp.Description("Pricing strategy: 'interactive' (default) or 'multiplicative'"),
		mcp.Enum("interactive", "multiplicative")),
)
