// Package ghmcp exposes the GitHub MCP server for embedding in other Go
// programs.
//
// Usage:
//
//	config := ghmcp.StdioServerConfig{
//	    Version:         "1.0.0",
//	    Token:           os.Getenv("GITHUB_TOKEN"),
//	    EnabledToolsets: []string{"repos", "issues"},
//	    Owner:           "octo-org",
//	}
//
//	if err := ghmcp.RunStdioServer(config); err != nil {
//	    log.Fatal(err)
//	}
package ghmcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcptools/mcp-github/internal/ghmcp"
)

// StdioServerConfig contains configuration for running the server in stdio
// mode. This is a re-export of the internal type.
type StdioServerConfig = ghmcp.StdioServerConfig

// MCPServerConfig contains configuration for creating a new MCP server
// instance. This is a re-export of the internal type.
type MCPServerConfig = ghmcp.MCPServerConfig

// RunStdioServer serves MCP over stdin/stdout until interrupted. It is not
// concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	return ghmcp.RunStdioServer(cfg)
}

// NewMCPServer creates a new MCP server instance with the given
// configuration.
func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	return ghmcp.NewMCPServer(cfg)
}

// ResolveToken returns the token the server should use: the explicit value,
// then the named environment variable, then GITHUB_TOKEN.
func ResolveToken(explicit, tokenEnv string) string {
	return ghmcp.ResolveToken(explicit, tokenEnv)
}
