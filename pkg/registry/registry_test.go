package registry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bklybor/decision-table/pkg/dtable"
	"github.com/bklybor/decision-table/pkg/journal"
	"github.com/bklybor/decision-table/pkg/metrics"
)

const weatherYAML = `name: weather
conditions: [weather, day]
actions: [activity]
rows:
  - when: [rainy, "*"]
    then: [read]
  - when: [sunny, "*"]
    then: [hike]
  - when: ["*", "*"]
    then: [rest]
`

const pricingCSV = `tier,region,->,discount
gold,*,,0.2
*,eu,,0.1
*,*,,0
`

func writeTables(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"weather.yaml": weatherYAML,
		"pricing.csv":  pricingCSV,
		"notes.txt":    "not a table",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRegistry(t *testing.T, dir string, opts ...Option) *Registry {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Dir = dir

	r, err := New(context.Background(), cfg, testLogger(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestRegistry_LoadsDirectory(t *testing.T) {
	r := newTestRegistry(t, writeTables(t))

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("Names() = %v, want 2 tables", names)
	}

	for _, name := range []string{"weather", "pricing"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("Get(%q) error: %v", name, err)
		}
	}
}

func TestRegistry_SkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"good.yaml":   weatherYAML,
		"broken.yaml": "conditions: [a, a]\nactions: [x]\nrows: []\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	r := newTestRegistry(t, dir)

	if names := r.Names(); len(names) != 1 || names[0] != "weather" {
		t.Errorf("Names() = %v, want [weather]", names)
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := newTestRegistry(t, writeTables(t))

	_, err := r.Get("nonexistent")
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get(nonexistent) error = %v, want *TableNotFoundError", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("Name = %q, want %q", notFound.Name, "nonexistent")
	}
}

func TestRegistry_Decide(t *testing.T) {
	r := newTestRegistry(t, writeTables(t))

	decision, err := r.Decide("weather", map[string]any{"weather": "sunny", "day": "monday"})
	if err != nil {
		t.Fatalf("Decide() error: %v", err)
	}
	if decision.Actions["activity"] != "hike" {
		t.Errorf("activity = %v, want hike", decision.Actions["activity"])
	}

	_, err = r.Decide("nonexistent", map[string]any{"weather": "sunny"})
	var notFound *TableNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Decide(nonexistent) error = %v, want *TableNotFoundError", err)
	}
}

func TestRegistry_DecideAll(t *testing.T) {
	r := newTestRegistry(t, writeTables(t))

	decisions, err := r.DecideAll("pricing", map[string]any{"tier": "gold", "region": "eu"})
	if err != nil {
		t.Fatalf("DecideAll() error: %v", err)
	}
	if len(decisions) != 3 {
		t.Fatalf("matched %d rows, want 3", len(decisions))
	}
	if decisions[0].Actions["discount"] != 0.2 {
		t.Errorf("first discount = %v, want 0.2", decisions[0].Actions["discount"])
	}
}

func TestRegistry_DecideRecordsJournal(t *testing.T) {
	storage := journal.NewMemory()
	rec := journal.NewRecorder(storage, journal.DefaultRecorderConfig(), testLogger())
	defer rec.Close()

	r := newTestRegistry(t, writeTables(t), WithRecorder(rec))

	if _, err := r.Decide("weather", map[string]any{"weather": "rainy", "day": "tuesday"}); err != nil {
		t.Fatalf("Decide() error: %v", err)
	}

	rec.Close()

	count, err := storage.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("journal record count = %d, want 1", count)
	}
}

func TestRegistry_DecideObservesMetrics(t *testing.T) {
	m := metrics.New(&metrics.Config{Namespace: "testns"})
	r := newTestRegistry(t, writeTables(t), WithMetrics(m))

	if _, err := r.Decide("weather", map[string]any{"weather": "sunny", "day": "monday"}); err != nil {
		t.Fatalf("Decide() error: %v", err)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	var found bool
	for _, mf := range families {
		if mf.GetName() == "testns_decisions_total" {
			found = true
			if len(mf.GetMetric()) != 1 {
				t.Errorf("decisions_total series = %d, want 1", len(mf.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("testns_decisions_total not gathered")
	}
}

func TestRegistry_Reload(t *testing.T) {
	dir := writeTables(t)
	r := newTestRegistry(t, dir)

	extra := `name: routing
conditions: [method]
actions: [handler]
rows:
  - when: [GET]
    then: [fetch]
`
	if err := os.WriteFile(filepath.Join(dir, "routing.yaml"), []byte(extra), 0o644); err != nil {
		t.Fatalf("failed to write routing.yaml: %v", err)
	}

	if _, err := r.Get("routing"); err == nil {
		t.Fatal("Get(routing) before reload should fail")
	}

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	if _, err := r.Get("routing"); err != nil {
		t.Errorf("Get(routing) after reload error: %v", err)
	}
}

func TestRegistry_ReloadRemovesDeleted(t *testing.T) {
	dir := writeTables(t)
	r := newTestRegistry(t, dir)

	if err := os.Remove(filepath.Join(dir, "pricing.csv")); err != nil {
		t.Fatalf("failed to remove pricing.csv: %v", err)
	}
	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	var notFound *TableNotFoundError
	if _, err := r.Get("pricing"); !errors.As(err, &notFound) {
		t.Errorf("Get(pricing) after reload error = %v, want *TableNotFoundError", err)
	}
}

func TestRegistry_NoMatchPassthrough(t *testing.T) {
	dir := t.TempDir()
	table := `name: strict
conditions: [color]
actions: [code]
rows:
  - when: [red]
    then: [1]
`
	if err := os.WriteFile(filepath.Join(dir, "strict.yaml"), []byte(table), 0o644); err != nil {
		t.Fatalf("failed to write strict.yaml: %v", err)
	}

	r := newTestRegistry(t, dir)

	_, err := r.Decide("strict", map[string]any{"color": "blue"})
	var noMatch *dtable.NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("Decide() error = %v, want *dtable.NoMatchError", err)
	}
}

func TestRegistry_Watch(t *testing.T) {
	dir := writeTables(t)

	cfg := DefaultConfig()
	cfg.Dir = dir
	cfg.DebounceInterval = 20 * time.Millisecond

	r, err := New(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- r.Watch(ctx)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	extra := `name: routing
conditions: [method]
actions: [handler]
rows:
  - when: [GET]
    then: [fetch]
`
	if err := os.WriteFile(filepath.Join(dir, "routing.yaml"), []byte(extra), 0o644); err != nil {
		t.Fatalf("failed to write routing.yaml: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := r.Get("routing"); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watcher did not pick up new table file")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-watchDone:
		if err != nil {
			t.Errorf("Watch() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancellation")
	}
}
