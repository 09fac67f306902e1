// PriceLens MCP Server - Exposes the pricing simulator as MCP tools for LLMs
//
// The engine runs in-process, so the tools work without the HTTP server.
// Quotes computed here are not persisted.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/mcpserver"
	"github.com/mkwei/pricelens/internal/pricing"
)

func main() {
	engine := pricing.NewEngine(nil)
	if os.Getenv("PRICELENS_DISABLE_JITTER") == "true" {
		engine.Register(pricing.NewMultiplicative().WithJitter(func() float64 { return 1.0 }))
	}

	s := mcpserver.NewMCPServer(catalog.NewMemoryStore(), engine)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
