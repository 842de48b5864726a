package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recall",
		Description: "Retrieve relevant long-term memories for a query, ranked by similarity, importance, recency and access history",
	}, NewRecallHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remember",
		Description: "Store a durable fact about the user in long-term memory",
	}, NewRememberHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "forget",
		Description: "Delete a stored memory by id, or by describing it; ambiguous descriptions return candidates instead of deleting",
	}, NewForgetHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture",
		Description: "Extract and store durable facts from a completed conversation turn",
	}, NewCaptureHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Show memory store size and runtime metrics",
	}, NewStatsHandler(deps))
}
