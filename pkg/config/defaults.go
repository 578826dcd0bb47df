package config

import "time"

// Default values for configuration fields.
const (
	// Tables defaults
	DefaultTablesDir        = "tables"
	DefaultDebounceInterval = 100 * time.Millisecond
	DefaultMaxFileSize      = 10 * 1024 * 1024 // 10MB

	// Journal defaults
	DefaultJournalBackend       = "sqlite"
	DefaultJournalSQLitePath    = "data/journal.db"
	DefaultJournalAsyncBuffer   = 1000
	DefaultJournalWriteTimeout  = 5 * time.Second
	DefaultJournalRetentionDays = 90
	DefaultJournalPruneSchedule = "0 3 * * *"

	// Metrics defaults
	DefaultMetricsNamespace     = "dtable"
	DefaultMetricsListenAddress = "127.0.0.1:9090"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// ApplyDefaults fills in default values for any unset configuration
// fields. Boolean fields keep their zero value; only empty strings,
// zero numbers, and zero durations are replaced.
func ApplyDefaults(cfg *Config) {
	if cfg.Tables.Dir == "" {
		cfg.Tables.Dir = DefaultTablesDir
	}
	if cfg.Tables.DebounceInterval == 0 {
		cfg.Tables.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Tables.MaxFileSize == 0 {
		cfg.Tables.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = DefaultJournalBackend
	}
	if cfg.Journal.SQLitePath == "" {
		cfg.Journal.SQLitePath = DefaultJournalSQLitePath
	}
	if cfg.Journal.AsyncBuffer == 0 {
		cfg.Journal.AsyncBuffer = DefaultJournalAsyncBuffer
	}
	if cfg.Journal.WriteTimeout == 0 {
		cfg.Journal.WriteTimeout = DefaultJournalWriteTimeout
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = DefaultJournalRetentionDays
	}
	if cfg.Journal.PruneSchedule == "" {
		cfg.Journal.PruneSchedule = DefaultJournalPruneSchedule
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
