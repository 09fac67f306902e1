package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkwei/pricelens/internal/catalog"
	"github.com/mkwei/pricelens/internal/pricing"
)

// NewMCPServer creates a configured MCP server with all simulator tools registered.
func NewMCPServer(cat catalog.Store, engine *pricing.Engine) *server.MCPServer {
	s := server.NewMCPServer("pricelens", "1.0.0")
	h := NewHandlers(cat, engine)

	s.AddTool(ToolListProducts, h.HandleListProducts)
	s.AddTool(ToolComputeQuote, h.HandleComputeQuote)
	s.AddTool(ToolGeneratePopulation, h.HandleGeneratePopulation)

	return s
}
