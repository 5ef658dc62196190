package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"stms-mcp/internal/core"
	"stms-mcp/internal/errors"
	"stms-mcp/internal/stms"
)

// loadConfig loads the configuration from the data directory.
func loadConfig() (*core.Config, error) {
	dataDir, err := core.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get data directory: %w", err)
	}

	cfg, err := core.LoadConfig(dataDir)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newClient builds a staging API client from the resolved configuration.
// A missing cookie is not fatal but warned about, since most endpoints
// will reject anonymous requests.
func newClient() (*stms.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if !cfg.CookieConfigured() && !flagQuiet {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", errors.CookieMissing().Message)
	}

	return stms.FromConfig(cfg), nil
}

// outputJSON marshals and prints JSON to stdout.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printResponse renders a staging API response. With --json the full
// envelope is printed; otherwise a status line followed by the pretty
// printed payload.
func printResponse(resp *stms.Response) error {
	if flagJSON {
		return outputJSON(resp)
	}

	if !flagQuiet {
		fmt.Printf("Status: %d\n", resp.StatusCode)
	}

	if resp.Error != "" {
		fmt.Printf("Error: %s\n", resp.Error)
		if resp.RawText != "" {
			fmt.Println(resp.RawText)
		}
		return nil
	}

	if text, ok := resp.Data.(string); ok {
		fmt.Println(text)
		return nil
	}

	return outputJSON(resp.Data)
}

// isTerminal checks if the given file descriptor is a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// getExitCode maps error codes to CLI exit codes.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	code := errors.Code(err)
	switch code {
	case errors.CodeConfigInvalid:
		return 2 // Bad configuration
	case errors.CodeRequestFailed:
		return 3 // Staging unreachable
	case errors.CodeInvalidParams, errors.CodeUnsupportedMethod, errors.CodeUnsupportedFormat:
		return 4 // Bad usage
	case "":
		// Not a stms-mcp error - could be usage error
		return 1 // General error
	default:
		return 1 // General error
	}
}

// printError prints an error to stderr with appropriate formatting.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// confirmPrompt prompts the user for a yes/no confirmation.
// Returns true if user confirms, false otherwise.
func confirmPrompt(message string) bool {
	if !isTerminal(os.Stdin) {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s (y/N): ", message)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
