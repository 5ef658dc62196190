package cli

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check staging API health",
	Long:  `Checks if the staging API is healthy and responding.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.HealthCheck(cmd.Context())
	if err != nil {
		return err
	}

	return printResponse(resp)
}
