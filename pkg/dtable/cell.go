package dtable

import (
	"fmt"
	"reflect"
)

// AnyToken is the display token for wildcard cells.
const AnyToken = "*"

// Cell represents a single table cell: either a concrete expected value
// or the wildcard marker that matches any input value.
type Cell struct {
	value    any
	wildcard bool
}

// NewCell creates a cell holding a concrete expected value.
func NewCell(v any) Cell {
	return Cell{value: v}
}

// Any creates a wildcard cell ("don't care").
func Any() Cell {
	return Cell{wildcard: true}
}

// IsAny returns true if this cell is a wildcard.
func (c Cell) IsAny() bool {
	return c.wildcard
}

// Value returns the concrete value stored in the cell.
// For wildcard cells the returned value is nil.
func (c Cell) Value() any {
	return c.value
}

// Matches reports whether the input value satisfies this cell's expectation.
// Wildcard cells match every value. Concrete cells match iff the input equals
// the stored value: numeric values compare by value across Go numeric types,
// everything else by deep structural equality. There is no coercion between
// strings and numbers.
func (c Cell) Matches(input any) bool {
	if c.wildcard {
		return true
	}
	return equalValues(c.value, input)
}

// String returns the display value of the cell, with wildcards rendered
// as AnyToken.
func (c Cell) String() string {
	if c.wildcard {
		return AnyToken
	}
	return fmt.Sprintf("%v", c.value)
}

// equalValues checks if two values are equal.
// Numeric comparison is tried first so that int 1 equals float64 1;
// all other types fall back to deep comparison.
func equalValues(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	aNum, aOK := toFloat64(a)
	bNum, bOK := toFloat64(b)
	if aOK && bOK {
		return aNum == bNum
	}
	if aOK != bOK {
		// One side is numeric, the other is not: never equal.
		return false
	}

	return reflect.DeepEqual(a, b)
}

// toFloat64 converts a Go numeric value to float64.
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
