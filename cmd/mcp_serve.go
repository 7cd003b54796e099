package cmd

import (
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes kindness tools
over stdio transport.

Available tools:
  - get_daily_prompt: Today's prompt and whether it is done
  - complete_prompt:  Mark today's prompt completed, with optional notes
  - skip_prompt:      Skip today's prompt and get another one
  - get_progress:     Current and best streak, totals and next milestone
  - list_history:     Completed prompts, newest first

Example client config:
  {
    "mcpServers": {
      "kindctl": {
        "command": "/path/to/kindctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationDaemon: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcptools.CreateMCPServer(svc, appConfig.DataDir)

		// stdout is reserved for the protocol; the daemon logger writes to stderr.
		logger.Info("starting MCP server", "transport", "stdio", "storage", appConfig.Storage, "data_dir", appConfig.DataDir)
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}
