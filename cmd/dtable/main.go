// Dtable is a command-line tool for working with decision tables.
//
// It validates, renders, and evaluates decision table files, and can run
// as a long-lived service that watches a table directory and journals
// evaluations.
//
// Usage:
//
//	# Validate table files
//	dtable lint --file weather.yaml
//	dtable lint --dir tables/
//
//	# Render a table
//	dtable show --file weather.yaml --format markdown
//
//	# Evaluate a table against an input
//	dtable decide --file weather.yaml --input weather=sunny --input day=monday
//
//	# Run the table service
//	dtable serve --config config.yaml
//
//	# Show version information
//	dtable version
package main

func main() {
	Execute()
}
