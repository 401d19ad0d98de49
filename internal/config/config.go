package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested config keys to env var segments, so
// "logging.level" becomes SORTKIT_LOGGING_LEVEL.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config represents the complete sortkit configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Output  OutputConfig  `json:"output" mapstructure:"output"`
	Sort    SortConfig    `json:"sort" mapstructure:"sort"`
	CSV     CSVConfig     `json:"csv" mapstructure:"csv"`
	Store   StoreConfig   `json:"store" mapstructure:"store"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls how sorted datasets are written
type OutputConfig struct {
	// Format is the default output format when the destination gives no
	// extension to detect from (json, yaml, toml, csv)
	Format string `json:"format" mapstructure:"format"`
}

// SortConfig holds default comparison options
type SortConfig struct {
	NullsLast       bool `json:"nullsLast" mapstructure:"nullsLast"`
	CaseInsensitive bool `json:"caseInsensitive" mapstructure:"caseInsensitive"`
}

// CSVConfig controls CSV decoding
type CSVConfig struct {
	// Autodetect parses numeric and boolean-looking cells into typed
	// values instead of strings
	Autodetect bool `json:"autodetect" mapstructure:"autodetect"`
}

// StoreConfig locates the dataset store
type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultDir returns the directory sortkit keeps its config and store
// in: $XDG_CONFIG_HOME/sortkit (or the platform equivalent).
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "sortkit")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Format: "json",
		},
		Sort: SortConfig{
			NullsLast:       false,
			CaseInsensitive: false,
		},
		CSV: CSVConfig{
			Autodetect: true,
		},
		Store: StoreConfig{
			Path: filepath.Join(DefaultDir(), "sortkit.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load loads configuration from config.json in dir, falling back to
// defaults when no file exists. SORTKIT_* environment variables override
// file values (e.g. SORTKIT_LOGGING_LEVEL=debug).
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("sort.nullsLast", defaults.Sort.NullsLast)
	v.SetDefault("sort.caseInsensitive", defaults.Sort.CaseInsensitive)
	v.SetDefault("csv.autodetect", defaults.CSV.Autodetect)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("SORTKIT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file: defaults plus env overrides still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to config.json in dir.
func (c *Config) Save(dir string) error {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}

	switch c.Output.Format {
	case "json", "yaml", "toml", "csv":
	default:
		return &ConfigError{Field: "output.format", Message: "unknown format " + c.Output.Format}
	}

	switch c.Logging.Format {
	case "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "unknown format " + c.Logging.Format}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
