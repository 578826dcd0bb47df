package dtable

// Renderer formats a table's columns and rows into a human-readable string.
// Implementations are pure: the table hands over its column names and the
// display values of its rows, and never formats text itself.
type Renderer interface {
	Render(columns []string, rows [][]string) string
}

// Render formats the table through the given renderer. Columns are the
// condition column names followed by the action column names; wildcard
// cells are rendered as AnyToken.
func (t *Table) Render(r Renderer) string {
	return r.Render(t.Columns(), t.RowStrings())
}
