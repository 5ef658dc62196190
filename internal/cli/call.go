package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stms-mcp/internal/errors"
)

var callFlagYes bool

var callCmd = &cobra.Command{
	Use:   "call <method> <path> [json-body]",
	Short: "Make a generic staging API request",
	Long: `Makes a generic request against the staging API.

The method must be GET, POST, PUT or DELETE. For POST and PUT an
optional JSON object body can be passed as the third argument; it
defaults to an empty object.

Examples:
  stms-mcp call GET /user/whoami
  stms-mcp call POST /user/list '{"page":1,"page_size":5}'`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCall,
}

func init() {
	callCmd.Flags().BoolVar(&callFlagYes, "yes", false, "Skip confirmation for mutating requests")
}

func runCall(cmd *cobra.Command, args []string) error {
	method := strings.ToUpper(args[0])
	path := args[1]

	body, err := parseBodyArg(args)
	if err != nil {
		return err
	}

	// Mutating requests against staging get a confirmation when run
	// interactively.
	if method != http.MethodGet && !callFlagYes && isTerminal(os.Stdin) {
		if !confirmPrompt(fmt.Sprintf("Send %s %s to staging?", method, path)) {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Request(cmd.Context(), method, path, body)
	if err != nil {
		return err
	}

	return printResponse(resp)
}

// parseBodyArg parses the optional JSON body argument.
func parseBodyArg(args []string) (interface{}, error) {
	if len(args) < 3 || args[2] == "" {
		return nil, nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal([]byte(args[2]), &body); err != nil {
		return nil, errors.InvalidParams(fmt.Sprintf("body is not a JSON object: %s", err))
	}
	return body, nil
}
