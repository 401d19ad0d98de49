package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sortkit/internal/config"
	"sortkit/internal/logging"
	"sortkit/internal/version"
)

var (
	// configDirFlag overrides the default config directory
	configDirFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
	// logFormatFlag overrides the configured log format
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sortkit",
	Short: "sortkit - composable multi-key sorting for flat datasets",
	Long: `sortkit sorts flat record files (JSON, YAML, TOML, CSV, optionally
gzipped) by any combination of fields. Sort keys compose lexicographically:
"last,first,-year" orders by last name, breaks ties by first name, and
breaks remaining ties by year descending. Sorts are stable throughout.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("sortkit version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Config directory (default: platform config dir + /sortkit)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human, json")
}

// mustLoadConfig loads configuration or exits with a message. CLI flags
// take precedence over SORTKIT_* env vars, which take precedence over
// the config file.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configDirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.Logging.Format = logFormatFlag
	}
	return cfg
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.New(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
