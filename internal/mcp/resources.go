package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const configResourceURI = "stms://config"

// registerResources registers the read-only server resources.
func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(configResourceURI,
		"Server configuration",
		mcp.WithResourceDescription("Current MCP server configuration (without sensitive data)"),
		mcp.WithMIMEType("application/json"),
	), s.handleConfigResource)
}

// handleConfigResource serves stms://config: the resolved configuration
// with the staging cookie reduced to a presence flag.
func (s *Server) handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(map[string]interface{}{
		"staging_url":       s.cfg.API.BaseURL,
		"cookie_configured": s.cfg.CookieConfigured(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      configResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
