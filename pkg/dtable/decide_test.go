package dtable

import (
	"errors"
	"reflect"
	"testing"
)

// weatherTable builds the canonical example table:
//
//	weather | weekday -> activity
//	rainy   | *       -> read
//	sunny   | *       -> hike
//	*       | *       -> rest
func weatherTable(t *testing.T) *Table {
	t.Helper()
	table := mustTable(t, []string{"weather", "weekday"}, []string{"activity"})

	rows := []struct {
		weather Cell
		action  string
	}{
		{NewCell("rainy"), "read"},
		{NewCell("sunny"), "hike"},
		{Any(), "rest"},
	}
	for _, r := range rows {
		if err := table.AddRow([]Cell{r.weather, Any()}, []Cell{NewCell(r.action)}); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}
	return table
}

// TestDecide_FirstMatch tests first-match evaluation against the example
// scenario.
func TestDecide_FirstMatch(t *testing.T) {
	table := weatherTable(t)

	tests := []struct {
		name       string
		input      map[string]any
		wantAction string
		wantRow    int
	}{
		{
			name:       "sunny Monday hikes",
			input:      map[string]any{"weather": "sunny", "weekday": "Mon"},
			wantAction: "hike",
			wantRow:    1,
		},
		{
			name:       "rainy day reads",
			input:      map[string]any{"weather": "rainy", "weekday": "Sat"},
			wantAction: "read",
			wantRow:    0,
		},
		{
			name:       "cloudy falls through to catch-all",
			input:      map[string]any{"weather": "cloudy", "weekday": "Tue"},
			wantAction: "rest",
			wantRow:    2,
		},
		{
			name:       "extra input keys ignored",
			input:      map[string]any{"weather": "sunny", "weekday": "Mon", "mood": "great"},
			wantAction: "hike",
			wantRow:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := table.Decide(tt.input)
			if err != nil {
				t.Fatalf("Decide: %v", err)
			}
			if decision.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", decision.Row, tt.wantRow)
			}
			if got := decision.Actions["activity"]; got != tt.wantAction {
				t.Errorf("activity = %v, want %q", got, tt.wantAction)
			}
		})
	}
}

// TestDecide_NoMatch tests that removing the catch-all row makes an
// unmatched input fail with NoMatchError.
func TestDecide_NoMatch(t *testing.T) {
	table := weatherTable(t)
	input := map[string]any{"weather": "cloudy", "weekday": "Tue"}

	// With the catch-all present the input matches.
	if _, err := table.Decide(input); err != nil {
		t.Fatalf("Decide with catch-all: %v", err)
	}

	if err := table.RemoveRow(2); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	_, err := table.Decide(input)
	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
}

func TestDecide_MissingCondition(t *testing.T) {
	table := weatherTable(t)

	_, err := table.Decide(map[string]any{"weather": "sunny"})
	var missing *MissingConditionError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConditionError, got %v", err)
	}
	if missing.Column != "weekday" {
		t.Errorf("Column = %q, want %q", missing.Column, "weekday")
	}
}

// TestDecideAll tests all-matches evaluation and its ordering guarantees.
func TestDecideAll(t *testing.T) {
	table := weatherTable(t)

	tests := []struct {
		name        string
		input       map[string]any
		wantActions []string
		wantRows    []int
	}{
		{
			name:        "sunny overlaps with catch-all",
			input:       map[string]any{"weather": "sunny", "weekday": "Mon"},
			wantActions: []string{"hike", "rest"},
			wantRows:    []int{1, 2},
		},
		{
			name:        "cloudy matches only catch-all",
			input:       map[string]any{"weather": "cloudy", "weekday": "Tue"},
			wantActions: []string{"rest"},
			wantRows:    []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions, err := table.DecideAll(tt.input)
			if err != nil {
				t.Fatalf("DecideAll: %v", err)
			}
			if len(decisions) != len(tt.wantActions) {
				t.Fatalf("got %d decisions, want %d", len(decisions), len(tt.wantActions))
			}
			for i, d := range decisions {
				if d.Row != tt.wantRows[i] {
					t.Errorf("decision %d row = %d, want %d", i, d.Row, tt.wantRows[i])
				}
				if got := d.Actions["activity"]; got != tt.wantActions[i] {
					t.Errorf("decision %d activity = %v, want %q", i, got, tt.wantActions[i])
				}
			}
		})
	}
}

// TestDecideAll_Empty tests that no matches yields an empty slice, not an
// error.
func TestDecideAll_Empty(t *testing.T) {
	table := mustTable(t, []string{"a"}, []string{"x"})
	table.AddRow([]Cell{NewCell(1)}, []Cell{NewCell("one")})

	decisions, err := table.DecideAll(map[string]any{"a": 2})
	if err != nil {
		t.Fatalf("DecideAll: %v", err)
	}
	if len(decisions) != 0 {
		t.Errorf("got %d decisions, want 0", len(decisions))
	}
}

// TestDecide_AppendedRowReachable tests that a freshly appended row is
// reachable through DecideAll with an input matching its concrete cells.
func TestDecide_AppendedRowReachable(t *testing.T) {
	table := mustTable(t, []string{"tier", "region"}, []string{"queue"})
	table.AddRow([]Cell{NewCell("gold"), Any()}, []Cell{NewCell("fast")})
	table.AddRow([]Cell{NewCell("gold"), NewCell("eu")}, []Cell{NewCell("fast-eu")})

	decisions, err := table.DecideAll(map[string]any{"tier": "gold", "region": "eu"})
	if err != nil {
		t.Fatalf("DecideAll: %v", err)
	}

	found := false
	for _, d := range decisions {
		if d.Row == 1 {
			found = true
		}
	}
	if !found {
		t.Error("appended row not among all-matches results")
	}
}

// TestDecide_Idempotent tests that repeated evaluation of an unmutated
// table yields identical results.
func TestDecide_Idempotent(t *testing.T) {
	table := weatherTable(t)
	input := map[string]any{"weather": "rainy", "weekday": "Wed"}

	first, err := table.Decide(input)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	second, err := table.Decide(input)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestDecide_NumericConditions(t *testing.T) {
	table := mustTable(t, []string{"code"}, []string{"severity"})
	table.AddRow([]Cell{NewCell(500)}, []Cell{NewCell("critical")})
	table.AddRow([]Cell{Any()}, []Cell{NewCell("info")})

	// float64 input matches an int cell of the same value (YAML and JSON
	// decoders produce float64 for numbers).
	decision, err := table.Decide(map[string]any{"code": float64(500)})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Actions["severity"] != "critical" {
		t.Errorf("severity = %v, want critical", decision.Actions["severity"])
	}

	// A string of the same digits does not.
	decision, err = table.Decide(map[string]any{"code": "500"})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decision.Actions["severity"] != "info" {
		t.Errorf("severity = %v, want info", decision.Actions["severity"])
	}
}
