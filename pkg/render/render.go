// Package render provides tabular formatters for decision tables.
//
// The formatters implement the dtable.Renderer interface: they receive the
// table's column names and row display values and produce a human-readable
// string. They perform no I/O and hold no state.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Text renders a table as aligned plain text with a header separator.
type Text struct{}

// Render formats the columns and rows as an aligned text table.
func (Text) Render(columns []string, rows [][]string) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(columns, "\t"))

	separators := make([]string, len(columns))
	for i, col := range columns {
		separators[i] = strings.Repeat("-", len(col))
	}
	fmt.Fprintln(w, strings.Join(separators, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
	return sb.String()
}

// Markdown renders a table as a GitHub-style pipe table.
type Markdown struct{}

// Render formats the columns and rows as a Markdown table.
func (Markdown) Render(columns []string, rows [][]string) string {
	var sb strings.Builder

	sb.WriteString("| " + strings.Join(columns, " | ") + " |\n")

	separators := make([]string, len(columns))
	for i := range columns {
		separators[i] = "---"
	}
	sb.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, cell := range row {
			escaped[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
	}

	return sb.String()
}
