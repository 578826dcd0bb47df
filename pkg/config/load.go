package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// DTABLE_SECTION_FIELD (e.g. DTABLE_TABLES_DIR) and always take
// precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies DTABLE_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("DTABLE_TABLES_DIR"); val != "" {
		cfg.Tables.Dir = val
	}
	if val := os.Getenv("DTABLE_TABLES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tables.Watch = b
		}
	}
	if val := os.Getenv("DTABLE_TABLES_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Tables.DebounceInterval = d
		}
	}

	if val := os.Getenv("DTABLE_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("DTABLE_JOURNAL_BACKEND"); val != "" {
		cfg.Journal.Backend = val
	}
	if val := os.Getenv("DTABLE_JOURNAL_SQLITE_PATH"); val != "" {
		cfg.Journal.SQLitePath = val
	}
	if val := os.Getenv("DTABLE_JOURNAL_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Journal.RetentionDays = n
		}
	}

	if val := os.Getenv("DTABLE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("DTABLE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}

	if val := os.Getenv("DTABLE_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("DTABLE_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
