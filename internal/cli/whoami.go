package cli

import (
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current authenticated staging user",
	Long: `Fetches the current authenticated user context from staging.

Useful as a quick check that the configured session cookie is valid.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Whoami(cmd.Context())
	if err != nil {
		return err
	}

	return printResponse(resp)
}
