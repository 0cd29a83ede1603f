package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

// Global flags for logging configuration
var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
)

// RegisterLoggerFlags registers global logging flags
func RegisterLoggerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
}

// CreateLogger creates a logger based on CLI flags
func CreateLogger() logger.Logger {
	var format logger.Format
	switch flagLogFormat {
	case "json":
		format = logger.FormatJSON
	default:
		format = logger.FormatText
	}

	opts := []logger.Option{
		logger.WithLevel(logger.ParseLevel(flagLogLevel)),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
	}
	if flagDebug {
		opts = append(opts, logger.WithDebug())
	}
	return logger.New(opts...)
}
