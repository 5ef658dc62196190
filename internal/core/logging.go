package core

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogging configures logrus for the process.
// Logs always go to stderr: the MCP stdio transport owns stdout and any
// stray write there corrupts the JSON-RPC stream.
func SetupLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if v := os.Getenv("STMS_LOG_LEVEL"); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
}
