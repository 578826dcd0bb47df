package config

import (
	"time"

	"github.com/bklybor/decision-table/pkg/logging"
)

// Config is the root configuration structure for the decision table
// service. It contains the table source, journal, metrics, and logging
// sections.
type Config struct {
	// Tables contains configuration for the table source directory and
	// hot reloading.
	Tables TablesConfig `yaml:"tables"`

	// Journal contains configuration for decision journaling including
	// backend selection and retention.
	Journal JournalConfig `yaml:"journal"`

	// Metrics contains configuration for Prometheus metrics exposure.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains structured logging configuration.
	Logging logging.Config `yaml:"logging"`
}

// TablesConfig contains configuration for the table registry.
type TablesConfig struct {
	// Dir is the directory containing table definition files
	// (.yaml, .yml, or .csv).
	// Default: "tables"
	Dir string `yaml:"dir"`

	// Watch enables hot reloading when files in Dir change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period before a file change triggers
	// a reload.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// MaxFileSize is the maximum size in bytes of a single table file.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// JournalConfig contains configuration for decision journaling.
type JournalConfig struct {
	// Enabled controls whether evaluations are journaled.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the journal storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the path to the SQLite journal database. Only used
	// when Backend is "sqlite".
	// Default: "data/journal.db"
	SQLitePath string `yaml:"sqlite_path"`

	// AsyncBuffer is the size of the async write buffer. Records are
	// dropped when the buffer is full.
	// Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for a single journal write.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// RetentionDays is the number of days to keep journal records.
	// Zero disables age-based pruning.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of journal records. Zero disables
	// count-based pruning.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is the cron schedule for retention pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "dtable"
	Namespace string `yaml:"namespace"`

	// ListenAddress is the address for the metrics HTTP endpoint.
	// Format: "host:port".
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}
