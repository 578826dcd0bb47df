package dtable

import (
	"fmt"
	"strings"
)

// SchemaError indicates malformed column definitions at table creation:
// empty name lists, duplicate names, or a name used as both a condition
// and an action column.
type SchemaError struct {
	Errors []string
}

// Error returns the error message.
func (e *SchemaError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("table schema: %s", e.Errors[0])
	}
	return fmt.Sprintf("table schema: %d errors: %s", len(e.Errors), strings.Join(e.Errors, "; "))
}

// RowShapeError indicates a row's cell counts do not match the table's
// declared columns.
type RowShapeError struct {
	Side string // "condition" or "action"
	Want int
	Got  int
}

// Error returns the error message.
func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row shape: %d %s cells, table declares %d %s columns", e.Got, e.Side, e.Want, e.Side)
}

// InvalidActionValueError indicates a wildcard was used where a concrete
// action value is required.
type InvalidActionValueError struct {
	Column string
}

// Error returns the error message.
func (e *InvalidActionValueError) Error() string {
	return fmt.Sprintf("action column %q: wildcard is not a valid action value", e.Column)
}

// MissingConditionError indicates the evaluation input omits a declared
// condition column.
type MissingConditionError struct {
	Column string
}

// Error returns the error message.
func (e *MissingConditionError) Error() string {
	return fmt.Sprintf("input missing condition column %q", e.Column)
}

// NoMatchError indicates a first-match evaluation found no matching row.
// There is no implicit default row: a table either includes an explicit
// catch-all row or the caller handles this error.
type NoMatchError struct {
	RowCount int
}

// Error returns the error message.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no matching row (%d rows scanned)", e.RowCount)
}

// IndexOutOfRangeError indicates a row access or removal with an invalid index.
type IndexOutOfRangeError struct {
	Index    int
	RowCount int
}

// Error returns the error message.
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("row index %d out of range [0, %d)", e.Index, e.RowCount)
}
