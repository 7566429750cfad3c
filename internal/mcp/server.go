package mcp

import (
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string
	Catalog *search.Catalog // Optional: query tools are registered when set
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Catalog != nil {
		RegisterTools(s, cfg.Catalog)
	}

	return s
}
