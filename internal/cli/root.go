package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stms-mcp/internal/core"
)

var (
	// Version is set via ldflags during build
	Version = "dev"
	// Commit is set via ldflags during build
	Commit = "unknown"

	// Global flags
	flagJSON    bool
	flagQuiet   bool
	flagVerbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stms-mcp",
	Short: "MCP server for the sc-stms-api staging environment",
	Long: `stms-mcp exposes tools for debugging and interacting with the
sc-stms-api staging service from AI clients (Cursor, Claude Desktop).

It provides an MCP server on stdio plus a small CLI for poking the
staging API directly from a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		core.SetupLogging(flagVerbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		os.Exit(getExitCode(err))
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add all subcommands
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// GetVersion returns the version string
func GetVersion() string {
	if Commit != "unknown" {
		return fmt.Sprintf("%s (%s)", Version, Commit[:7])
	}
	return Version
}
