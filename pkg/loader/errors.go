package loader

import "fmt"

// ParseError indicates a table definition could not be parsed or failed
// validation during construction.
type ParseError struct {
	File    string
	Line    int
	Message string
	Cause   error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
