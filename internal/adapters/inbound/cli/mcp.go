package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/ecfix/ecfix/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the ecfix MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ecfix MCP server (stdio)",
		Long:  "Start the ecfix MCP server using stdio transport. This lets AI coding assistants extract violations, policy configuration, and components from verification logs and resolve rule context.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewECFixMCPServer()
			return server.ServeStdio(s)
		},
	}
	return cmd
}
