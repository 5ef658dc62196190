package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestHandleConfigResource(t *testing.T) {
	srv := newTestServer(t, nil)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = configResourceURI

	contents, err := srv.handleConfigResource(context.Background(), req)
	if err != nil {
		t.Fatalf("handleConfigResource failed: %v", err)
	}

	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text resource contents, got %T", contents[0])
	}
	if text.URI != configResourceURI {
		t.Errorf("expected URI %q, got %q", configResourceURI, text.URI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("expected application/json, got %q", text.MIMEType)
	}

	var config map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &config); err != nil {
		t.Fatalf("failed to parse config resource: %v", err)
	}

	if config["cookie_configured"] != true {
		t.Error("expected cookie_configured true")
	}
	if config["staging_url"] != srv.cfg.API.BaseURL {
		t.Errorf("expected staging_url %q, got %v", srv.cfg.API.BaseURL, config["staging_url"])
	}

	// The cookie value itself must never be exposed
	if strings.Contains(text.Text, "test-cookie") {
		t.Errorf("config resource leaks cookie: %s", text.Text)
	}
}
