package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Flag names registered by AddFlags.
const (
	FlagLevel = "log-level"
	FlagJSON  = "log-json"
)

// AddFlags registers the logging flags on cmd as persistent flags.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagLevel, "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool(FlagJSON, false, "Emit logs as JSON")
}

// GetLoggerConfig reads the logging flags from cmd.
func GetLoggerConfig(cmd *cobra.Command) (string, bool, error) {
	logLevel, err := cmd.Flags().GetString(FlagLevel)
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s flag: %w", FlagLevel, err)
	}

	logJSON, err := cmd.Flags().GetBool(FlagJSON)
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s flag: %w", FlagJSON, err)
	}

	return logLevel, logJSON, nil
}

// SetupLogger installs the default logger for the given level and format.
func SetupLogger(logLevel string, logJSON bool) {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(logLevel)
	cfg.JSON = logJSON
	Init(cfg)
}
