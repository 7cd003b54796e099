// Package mcptools exposes the kindness service as MCP tools.
package mcptools

import (
	"context"

	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
var Version = "1.0.0"

// NewInMemoryServer creates an MCP server connected to an in-memory
// transport. Returns the server and the client side of the transport.
func NewInMemoryServer(svc *kindness.Service) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(svc, "")

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the kindness tools registered.
// dataDir is used for shell cache invalidation after writes; pass "" to skip.
func CreateMCPServer(svc *kindness.Service, dataDir string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kindctl",
		Version: Version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_daily_prompt",
		Description: "Get today's act of kindness prompt and whether it is completed",
	}, DailyPromptHandler(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get the current and best streak, total completions and next milestone",
	}, ProgressHandler(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_history",
		Description: "List completed kindness prompts, newest first",
	}, HistoryHandler(svc))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_prompt",
		Description: "Mark today's prompt as completed, with optional notes",
	}, CompleteHandler(svc, dataDir))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "skip_prompt",
		Description: "Skip today's prompt and get a different one",
	}, SkipHandler(svc, dataDir))

	return server
}
