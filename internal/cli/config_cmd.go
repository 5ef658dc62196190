package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Prints the resolved configuration after applying config.json and
environment variable overrides. The session cookie is shown only as a
presence flag.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(cfg.Redacted())
	}

	fmt.Printf("Staging URL: %s\n", cfg.API.BaseURL)
	fmt.Printf("Cookie configured: %t\n", cfg.CookieConfigured())
	fmt.Printf("Timeout: %s\n", cfg.Timeout())
	fmt.Printf("Retry attempts: %d\n", cfg.API.RetryAttempts)
	fmt.Printf("Page size: %d (shifts: %d)\n", cfg.Defaults.PageSize, cfg.Defaults.ShiftPageSize)
	fmt.Printf("Report cap: %d bytes\n", cfg.Defaults.ReportMaxBytes)

	return nil
}
