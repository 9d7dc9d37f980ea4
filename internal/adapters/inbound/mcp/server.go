package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewECFixMCPServer creates a new MCP server with all ecfix tools and
// resources registered.
func NewECFixMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"ecfix",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s)
	registerResources(s)

	return s
}
