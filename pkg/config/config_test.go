package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "tables:\n  dir: /etc/dtable/tables\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Tables.Dir != "/etc/dtable/tables" {
		t.Errorf("Tables.Dir = %q, want /etc/dtable/tables", cfg.Tables.Dir)
	}
	if cfg.Tables.DebounceInterval != DefaultDebounceInterval {
		t.Errorf("DebounceInterval = %v, want %v", cfg.Tables.DebounceInterval, DefaultDebounceInterval)
	}
	if cfg.Journal.Backend != DefaultJournalBackend {
		t.Errorf("Journal.Backend = %q, want %q", cfg.Journal.Backend, DefaultJournalBackend)
	}
	if cfg.Journal.RetentionDays != DefaultJournalRetentionDays {
		t.Errorf("RetentionDays = %d, want %d", cfg.Journal.RetentionDays, DefaultJournalRetentionDays)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `tables:
  dir: tables
  watch: true
  debounce_interval: 250ms
journal:
  enabled: true
  backend: memory
  retention_days: 7
  prune_schedule: "30 2 * * *"
metrics:
  enabled: true
  namespace: myapp
  listen_address: "0.0.0.0:9100"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Tables.Watch {
		t.Error("Tables.Watch = false, want true")
	}
	if cfg.Tables.DebounceInterval != 250*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 250ms", cfg.Tables.DebounceInterval)
	}
	if cfg.Journal.Backend != "memory" {
		t.Errorf("Journal.Backend = %q, want memory", cfg.Journal.Backend)
	}
	if cfg.Journal.RetentionDays != 7 {
		t.Errorf("RetentionDays = %d, want 7", cfg.Journal.RetentionDays)
	}
	if cfg.Metrics.Namespace != "myapp" {
		t.Errorf("Metrics.Namespace = %q, want myapp", cfg.Metrics.Namespace)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() with missing file should fail")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "tables: [not a mapping\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with invalid YAML should fail")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "empty tables dir",
			mutate: func(c *Config) { c.Tables.Dir = "" },
			field:  "tables.dir",
		},
		{
			name:   "unknown journal backend",
			mutate: func(c *Config) { c.Journal.Backend = "postgres" },
			field:  "journal.backend",
		},
		{
			name:   "negative retention",
			mutate: func(c *Config) { c.Journal.RetentionDays = -1 },
			field:  "journal.retention_days",
		},
		{
			name:   "bad cron schedule",
			mutate: func(c *Config) { c.Journal.PruneSchedule = "not a cron" },
			field:  "journal.prune_schedule",
		},
		{
			name:   "bad metrics address",
			mutate: func(c *Config) { c.Metrics.ListenAddress = "no-port" },
			field:  "metrics.listen_address",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
		{
			name:   "unknown log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			field:  "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if !strings.Contains(verr.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", verr.Error(), tt.field)
			}
		})
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("Validate(DefaultConfig()) error: %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "tables:\n  dir: from-file\n")

	t.Setenv("DTABLE_TABLES_DIR", "from-env")
	t.Setenv("DTABLE_JOURNAL_ENABLED", "true")
	t.Setenv("DTABLE_LOG_LEVEL", "debug")

	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides() error: %v", err)
	}

	if cfg.Tables.Dir != "from-env" {
		t.Errorf("Tables.Dir = %q, want from-env", cfg.Tables.Dir)
	}
	if !cfg.Journal.Enabled {
		t.Error("Journal.Enabled = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfig(t, "tables:\n  dir: tables\n")

	t.Setenv("DTABLE_LOG_LEVEL", "verbose")

	if _, err := LoadWithEnvOverrides(path); err == nil {
		t.Fatal("LoadWithEnvOverrides() with invalid level override should fail")
	}
}
