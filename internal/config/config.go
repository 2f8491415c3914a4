// Package config provides configuration loading for hjoin and mjoin,
// adapted from the gateway CLI's viper-based config layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds settings shared by both join CLIs that a user may want
// to fix once instead of repeating as flags every invocation.
type Config struct {
	// FieldSep is the default field separator when no --in-field-sep
	// flag (single or per-side) is given.
	FieldSep string `mapstructure:"fieldSep"`

	// RecordSep is the default record separator when no --in-rec-sep
	// flag (single or per-side) is given.
	RecordSep string `mapstructure:"recordSep"`

	Logging LoggingConfig `mapstructure:"logging"`
	Audit   AuditConfig   `mapstructure:"audit"`
}

// LoggingConfig holds run-logging configuration.
type LoggingConfig struct {
	// Level is "quiet" (no run log), "info" (one JSON line to stderr
	// per run), or "debug".
	Level string `mapstructure:"level"`
}

// AuditConfig holds the optional Postgres audit-log sink.
type AuditConfig struct {
	// DSN is the Postgres connection string. Empty disables persistence.
	DSN string `mapstructure:"dsn"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		FieldSep:  ",",
		RecordSep: "\n",
		Logging: LoggingConfig{
			Level: "info",
		},
		Audit: AuditConfig{
			DSN: "",
		},
	}
}

// Load loads configuration from file and environment. configPath, when
// non-empty, is used as-is; otherwise ~/.joinkit.yaml and ./.joinkit.yaml
// are tried, and environment variables with the JOINKIT prefix apply on
// top.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".joinkit")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("JOINKIT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

// ConfigFilePath resolves the default per-user config path, used by
// commands that want to report where they looked.
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".joinkit.yaml"
	}
	return filepath.Join(home, ".joinkit.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fieldSep", ",")
	v.SetDefault("recordSep", "\n")
	v.SetDefault("logging.level", "info")
	v.SetDefault("audit.dsn", "")
}
