// Package dtable implements an in-memory decision table: a structured
// representation of business logic as a table whose rows pair a set of
// input conditions with a set of resulting actions.
//
// A table declares named condition columns and named action columns, and
// holds an ordered, append-only sequence of rows. Each row's condition
// cells hold either a concrete expected value or a wildcard ("don't care");
// action cells always hold concrete values. Evaluation scans rows in order
// and selects the row(s) whose condition cells all match the input.
//
// # Basic Usage
//
//	table, err := dtable.New(
//	    []string{"weather", "weekday"},
//	    []string{"activity"},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table.AddRow(
//	    []dtable.Cell{dtable.NewCell("rainy"), dtable.Any()},
//	    []dtable.Cell{dtable.NewCell("read")},
//	)
//	table.AddRow(
//	    []dtable.Cell{dtable.NewCell("sunny"), dtable.Any()},
//	    []dtable.Cell{dtable.NewCell("hike")},
//	)
//	table.AddRow(
//	    []dtable.Cell{dtable.Any(), dtable.Any()},
//	    []dtable.Cell{dtable.NewCell("rest")},
//	)
//
//	decision, err := table.Decide(map[string]any{
//	    "weather": "sunny",
//	    "weekday": "Mon",
//	})
//	// decision.Actions == map[string]any{"activity": "hike"}
//
// # Evaluation Modes
//
// Decide returns the first matching row's actions and fails with a
// NoMatchError when no row matches; there is no implicit default row.
// DecideAll returns every matching row's actions in row order and an empty
// slice when none match, which makes overlapping rules visible while a
// table is being authored.
//
// Row order is the only tie-break mechanism. Tables are expected to be
// authored most-specific-first or with mutually exclusive rows; the engine
// performs no specificity ranking.
//
// # Matching Semantics
//
// A wildcard cell matches every input value, including values never seen
// at construction time. A concrete cell matches iff the input value equals
// the stored value: numeric values compare by value across Go numeric
// types, everything else by deep structural equality. A string "1" does
// not match the integer 1.
//
// # Errors
//
// All failures are local validation or lookup errors surfaced
// synchronously to the caller: SchemaError, RowShapeError,
// InvalidActionValueError, MissingConditionError, NoMatchError and
// IndexOutOfRangeError. The package performs no logging and no retries.
//
// # Concurrency
//
// A Table is a plain in-memory value with no internal synchronization.
// It must not be mutated while an evaluation is in progress on another
// goroutine; callers needing shared access should wrap it (see the
// registry package) or keep each table owned by a single goroutine.
package dtable
