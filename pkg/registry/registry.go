// Package registry manages a named set of decision tables loaded from a
// directory, with atomic reloads, optional file watching, and an
// instrumented evaluation surface.
//
// The core table type is not safe for concurrent mutation; the registry
// is the concurrency-safe layer around it. Tables are replaced atomically
// on reload, and evaluation goes through Decide/DecideAll, which add
// structured logging, Prometheus metrics, and journal recording around
// the pure core evaluation.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bklybor/decision-table/pkg/dtable"
	"github.com/bklybor/decision-table/pkg/journal"
	"github.com/bklybor/decision-table/pkg/loader"
	"github.com/bklybor/decision-table/pkg/metrics"
)

// tableExtensions are the file extensions loaded from the tables directory.
var tableExtensions = []string{".yaml", ".yml", ".csv"}

// TableNotFoundError indicates no table is registered under a name.
type TableNotFoundError struct {
	Name string
}

// Error returns the error message.
func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not registered", e.Name)
}

// Config contains registry configuration.
type Config struct {
	// Dir is the directory containing table definition files.
	Dir string

	// DebounceInterval is the quiet period before a file change triggers
	// a reload. Default: 100ms.
	DebounceInterval time.Duration

	// MaxFileSize caps the size of a single table file. Zero keeps the
	// parser default.
	MaxFileSize int64
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() *Config {
	return &Config{
		Dir:              "tables",
		DebounceInterval: 100 * time.Millisecond,
	}
}

// Registry holds named decision tables and evaluates them on demand.
type Registry struct {
	config   *Config
	parser   *loader.Parser
	logger   *slog.Logger
	metrics  *metrics.DecisionMetrics
	recorder *journal.Recorder

	mu     sync.RWMutex
	tables map[string]*loader.Definition

	watchMu sync.Mutex
	watcher *dirWatcher
}

// Option configures a Registry.
type Option func(*Registry)

// WithMetrics attaches decision metrics to the registry.
func WithMetrics(m *metrics.DecisionMetrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithRecorder attaches a journal recorder to the registry.
func WithRecorder(rec *journal.Recorder) Option {
	return func(r *Registry) { r.recorder = rec }
}

// New creates a registry and loads all table files from the configured
// directory.
func New(ctx context.Context, config *Config, logger *slog.Logger, opts ...Option) (*Registry, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	parser := loader.NewParser()
	if config.MaxFileSize > 0 {
		parser = parser.WithMaxFileSize(config.MaxFileSize)
	}

	r := &Registry{
		config: config,
		parser: parser,
		logger: logger.With("component", "registry"),
		tables: make(map[string]*loader.Definition),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads every table file from the directory and atomically
// replaces the registered tables. Files that fail to parse are skipped
// with a warning so one bad table cannot take down the rest.
func (r *Registry) Reload(ctx context.Context) error {
	tables := make(map[string]*loader.Definition)

	err := filepath.Walk(r.config.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !hasTableExtension(path) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		def, err := r.parser.ParseFile(path)
		if err != nil {
			r.logger.Warn("failed to load table file, skipping",
				"path", path,
				"error", err,
			)
			return nil
		}

		if prev, ok := tables[def.Name]; ok {
			r.logger.Warn("duplicate table name, keeping first",
				"name", def.Name,
				"kept_rows", prev.Table.RowCount(),
				"skipped_path", path,
			)
			return nil
		}

		tables[def.Name] = def
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load tables from %q: %w", r.config.Dir, err)
	}

	r.mu.Lock()
	r.tables = tables
	r.mu.Unlock()

	r.logger.Info("tables loaded",
		"dir", r.config.Dir,
		"table_count", len(tables),
	)
	return nil
}

// Get returns the definition registered under the given name.
func (r *Registry) Get(name string) (*loader.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.tables[name]
	if !ok {
		return nil, &TableNotFoundError{Name: name}
	}
	return def, nil
}

// Names returns the registered table names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}

// Decide evaluates the named table in first-match mode, instrumented
// with logging, metrics, and journal recording.
func (r *Registry) Decide(name string, input map[string]any) (dtable.Decision, error) {
	def, err := r.Get(name)
	if err != nil {
		return dtable.Decision{}, err
	}

	r.mu.RLock()
	start := time.Now()
	decision, err := def.Table.Decide(input)
	duration := time.Since(start)
	r.mu.RUnlock()

	r.observe(name, string(dtable.FirstMatch), outcomeOf(err), boolToCount(err == nil), duration)
	if r.recorder != nil {
		r.recorder.RecordDecision(name, input, decision, err, duration)
	}

	if err != nil {
		return dtable.Decision{}, err
	}

	r.logger.Debug("decision",
		"table", name,
		"row", decision.Row,
		"duration_us", duration.Microseconds(),
	)
	return decision, nil
}

// DecideAll evaluates the named table in all-matches mode, instrumented
// with logging, metrics, and journal recording.
func (r *Registry) DecideAll(name string, input map[string]any) ([]dtable.Decision, error) {
	def, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	start := time.Now()
	decisions, err := def.Table.DecideAll(input)
	duration := time.Since(start)
	r.mu.RUnlock()

	outcome := outcomeOf(err)
	if err == nil && len(decisions) == 0 {
		outcome = metrics.OutcomeNoMatch
	}
	r.observe(name, string(dtable.AllMatches), outcome, len(decisions), duration)
	if r.recorder != nil {
		r.recorder.RecordDecisions(name, input, decisions, err, duration)
	}

	if err != nil {
		return nil, err
	}

	r.logger.Debug("decision",
		"table", name,
		"matches", len(decisions),
		"duration_us", duration.Microseconds(),
	)
	return decisions, nil
}

// Watch blocks watching the tables directory and reloading on change.
// It returns when the context is cancelled or Close is called.
func (r *Registry) Watch(ctx context.Context) error {
	r.watchMu.Lock()
	if r.watcher != nil {
		r.watchMu.Unlock()
		return fmt.Errorf("registry already watching")
	}
	w, err := newDirWatcher(r.config.Dir, r.config.DebounceInterval, r.logger)
	if err != nil {
		r.watchMu.Unlock()
		return err
	}
	r.watcher = w
	r.watchMu.Unlock()

	defer func() {
		r.watchMu.Lock()
		r.watcher = nil
		r.watchMu.Unlock()
	}()

	return w.run(ctx, func() error {
		return r.Reload(context.Background())
	})
}

// Close stops the file watcher if one is running.
func (r *Registry) Close() error {
	r.watchMu.Lock()
	w := r.watcher
	r.watchMu.Unlock()

	if w == nil {
		return nil
	}
	return w.stop()
}

// observe records metrics if configured.
func (r *Registry) observe(table, mode, outcome string, matched int, duration time.Duration) {
	if r.metrics != nil {
		r.metrics.ObserveDecision(table, mode, outcome, matched, duration)
	}
}

// outcomeOf maps an evaluation error to a metrics outcome label.
func outcomeOf(err error) string {
	switch err.(type) {
	case nil:
		return metrics.OutcomeMatch
	case *dtable.NoMatchError:
		return metrics.OutcomeNoMatch
	default:
		return metrics.OutcomeError
	}
}

// boolToCount converts a successful first-match into a matched-row count.
func boolToCount(matched bool) int {
	if matched {
		return 1
	}
	return 0
}

// hasTableExtension reports whether the path has a loadable extension.
func hasTableExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range tableExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
