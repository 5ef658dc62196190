package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the base data directory for stms-mcp.
// It follows the XDG Base Directory Specification:
// - $STMS_MCP_DATA_DIR (full override)
// - $XDG_DATA_HOME/stms-mcp
// - ~/.local/share/stms-mcp (fallback)
func DataDir() (string, error) {
	// Check for full override
	if dir := os.Getenv("STMS_MCP_DATA_DIR"); dir != "" {
		return dir, nil
	}

	// Check XDG_DATA_HOME
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "stms-mcp"), nil
	}

	// Fallback to ~/.local/share/stms-mcp
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "stms-mcp"), nil
}
