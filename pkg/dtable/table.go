package dtable

import "fmt"

// Row is one rule: a conjunction of condition cells mapped to a fixed set
// of action cells. Rows have no lifecycle outside the table that owns them.
type Row struct {
	conditions []Cell
	actions    []Cell
}

// Conditions returns the row's condition cells in column order.
func (r Row) Conditions() []Cell {
	out := make([]Cell, len(r.conditions))
	copy(out, r.conditions)
	return out
}

// Actions returns the row's action cells in column order.
func (r Row) Actions() []Cell {
	out := make([]Cell, len(r.actions))
	copy(out, r.actions)
	return out
}

// Table is a decision table: named condition columns, named action columns,
// and an ordered sequence of rows. Row order is semantically significant:
// it is the tie-break order during evaluation.
//
// A Table is not safe for concurrent mutation; callers needing concurrent
// access must impose external locking.
type Table struct {
	conditions []string
	actions    []string
	rows       []Row
}

// New creates a decision table with the given condition and action column
// names. It returns a SchemaError if either list is empty, contains
// duplicates, or the two lists overlap.
func New(conditionCols, actionCols []string) (*Table, error) {
	var errs []string

	if len(conditionCols) == 0 {
		errs = append(errs, "at least one condition column is required")
	}
	if len(actionCols) == 0 {
		errs = append(errs, "at least one action column is required")
	}

	seen := make(map[string]bool, len(conditionCols)+len(actionCols))
	for _, name := range conditionCols {
		if seen[name] {
			errs = append(errs, fmt.Sprintf("duplicate condition column %q", name))
		}
		seen[name] = true
	}
	for _, name := range actionCols {
		if seen[name] {
			errs = append(errs, fmt.Sprintf("column %q declared more than once", name))
		}
		seen[name] = true
	}

	if len(errs) > 0 {
		return nil, &SchemaError{Errors: errs}
	}

	t := &Table{
		conditions: make([]string, len(conditionCols)),
		actions:    make([]string, len(actionCols)),
	}
	copy(t.conditions, conditionCols)
	copy(t.actions, actionCols)
	return t, nil
}

// ConditionColumns returns the condition column names in declaration order.
func (t *Table) ConditionColumns() []string {
	out := make([]string, len(t.conditions))
	copy(out, t.conditions)
	return out
}

// ActionColumns returns the action column names in declaration order.
func (t *Table) ActionColumns() []string {
	out := make([]string, len(t.actions))
	copy(out, t.actions)
	return out
}

// Columns returns all column names, condition columns followed by action
// columns. This is the column enumeration handed to renderers.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.conditions)+len(t.actions))
	out = append(out, t.conditions...)
	out = append(out, t.actions...)
	return out
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Rows returns a copy of the table's rows in evaluation order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// AddRow appends a row to the table. The condition cells align positionally
// with the condition columns, the action cells with the action columns.
//
// It returns a RowShapeError if either cell count does not match the
// declared columns, or an InvalidActionValueError if an action cell is a
// wildcard. On success the row is appended at the end of the row sequence.
func (t *Table) AddRow(conditions, actions []Cell) error {
	if len(conditions) != len(t.conditions) {
		return &RowShapeError{Side: "condition", Want: len(t.conditions), Got: len(conditions)}
	}
	if len(actions) != len(t.actions) {
		return &RowShapeError{Side: "action", Want: len(t.actions), Got: len(actions)}
	}
	for i, cell := range actions {
		if cell.IsAny() {
			return &InvalidActionValueError{Column: t.actions[i]}
		}
	}

	row := Row{
		conditions: make([]Cell, len(conditions)),
		actions:    make([]Cell, len(actions)),
	}
	copy(row.conditions, conditions)
	copy(row.actions, actions)
	t.rows = append(t.rows, row)
	return nil
}

// RemoveRow removes the row at the given index. Rows after it shift down
// by one; indices must not be cached across removals. It returns an
// IndexOutOfRangeError if the index is outside [0, RowCount()).
func (t *Table) RemoveRow(index int) error {
	if index < 0 || index >= len(t.rows) {
		return &IndexOutOfRangeError{Index: index, RowCount: len(t.rows)}
	}
	t.rows = append(t.rows[:index], t.rows[index+1:]...)
	return nil
}

// RowStrings returns the display values of every row, condition cells
// followed by action cells, with wildcards rendered as AnyToken.
func (t *Table) RowStrings() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, 0, len(row.conditions)+len(row.actions))
		for _, c := range row.conditions {
			cells = append(cells, c.String())
		}
		for _, c := range row.actions {
			cells = append(cells, c.String())
		}
		out[i] = cells
	}
	return out
}
