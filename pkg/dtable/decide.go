package dtable

// Mode identifies an evaluation mode.
type Mode string

const (
	// FirstMatch returns the actions of the lowest-index matching row.
	FirstMatch Mode = "first_match"

	// AllMatches returns the actions of every matching row in row order.
	AllMatches Mode = "all_matches"
)

// Decision is the outcome of a matched row: the row's index at evaluation
// time and its action values keyed by action column name.
type Decision struct {
	Row     int
	Actions map[string]any
}

// Decide evaluates the table against the input in first-match mode.
// The input maps condition column names to concrete values; every condition
// column must be present (extra keys are ignored, so a superset context
// object may be passed).
//
// Rows are scanned in order and a row matches iff every condition cell
// matches the corresponding input value. The first matching row's actions
// are returned. Decide returns a MissingConditionError if a condition
// column is absent from the input, or a NoMatchError if no row matches.
func (t *Table) Decide(input map[string]any) (Decision, error) {
	if err := t.validateInput(input); err != nil {
		return Decision{}, err
	}

	for i, row := range t.rows {
		if t.rowMatches(row, input) {
			return t.decision(i, row), nil
		}
	}
	return Decision{}, &NoMatchError{RowCount: len(t.rows)}
}

// DecideAll evaluates the table against the input in all-matches mode.
// It returns the decisions of every matching row in row order; an empty
// slice (not an error) means no row matched. This mode exists to detect
// rule overlap and ambiguity while authoring a table.
func (t *Table) DecideAll(input map[string]any) ([]Decision, error) {
	if err := t.validateInput(input); err != nil {
		return nil, err
	}

	decisions := []Decision{}
	for i, row := range t.rows {
		if t.rowMatches(row, input) {
			decisions = append(decisions, t.decision(i, row))
		}
	}
	return decisions, nil
}

// validateInput checks that every condition column is present in the input.
func (t *Table) validateInput(input map[string]any) error {
	for _, name := range t.conditions {
		if _, ok := input[name]; !ok {
			return &MissingConditionError{Column: name}
		}
	}
	return nil
}

// rowMatches reports whether every condition cell of the row matches the
// corresponding input value (logical AND across the row).
func (t *Table) rowMatches(row Row, input map[string]any) bool {
	for i, cell := range row.conditions {
		if !cell.Matches(input[t.conditions[i]]) {
			return false
		}
	}
	return true
}

// decision builds the Decision for a matched row.
func (t *Table) decision(index int, row Row) Decision {
	actions := make(map[string]any, len(t.actions))
	for i, cell := range row.actions {
		actions[t.actions[i]] = cell.Value()
	}
	return Decision{Row: index, Actions: actions}
}
