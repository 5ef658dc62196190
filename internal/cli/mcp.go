package cli

import (
	"github.com/spf13/cobra"

	"stms-mcp/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server on stdio",
	Long: `Starts the Model Context Protocol (MCP) server on stdio.

This command is used by MCP clients (Cursor, Claude Desktop, etc.) to
communicate with the staging API. It should not be run directly by users.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	return mcp.Serve()
}
