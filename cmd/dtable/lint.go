package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bklybor/decision-table/pkg/loader"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate table files",
	Long: `Validate decision table files for syntax and structural errors.

The lint command parses table files and reports:
  - YAML/CSV syntax errors
  - Duplicate or colliding column names
  - Rows whose cell counts do not match the declared columns
  - Wildcard cells in action columns

Examples:
  # Lint a single file
  dtable lint --file weather.yaml

  # Lint a directory
  dtable lint --dir tables/

  # JSON output for CI
  dtable lint --dir tables/ --format json`,
	RunE: lintTables,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "table file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of table files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single table file.
type LintResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Name  string `json:"name,omitempty"`
	Rows  int    `json:"rows,omitempty"`
	Line  int    `json:"line,omitempty"`
	Error string `json:"error,omitempty"`
}

func lintTables(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml", "*.csv"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list table files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no table files found")
	}

	parser := loader.NewParser()
	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(parser, file))
	}

	if lintFlags.format == "json" {
		return lintOutputJSON(results)
	}
	return lintOutputText(results)
}

func lintFile(parser *loader.Parser, path string) LintResult {
	def, err := parser.ParseFile(path)
	if err != nil {
		result := LintResult{File: path, Error: err.Error()}
		var perr *loader.ParseError
		if errors.As(err, &perr) {
			result.Line = perr.Line
			result.Error = perr.Message
		}
		return result
	}
	return LintResult{
		File:  path,
		Valid: true,
		Name:  def.Name,
		Rows:  def.Table.RowCount(),
	}
}

func lintOutputJSON(results []LintResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}
	return lintExitStatus(results)
}

func lintOutputText(results []LintResult) error {
	failed := 0
	for _, r := range results {
		if r.Valid {
			fmt.Printf("✓ %s (%s, %d rows)\n", r.File, r.Name, r.Rows)
			continue
		}
		failed++
		if r.Line > 0 {
			fmt.Printf("✗ %s:%d: %s\n", r.File, r.Line, r.Error)
		} else {
			fmt.Printf("✗ %s: %s\n", r.File, r.Error)
		}
	}
	fmt.Printf("\n%d files checked, %d invalid\n", len(results), failed)
	return lintExitStatus(results)
}

func lintExitStatus(results []LintResult) error {
	for _, r := range results {
		if !r.Valid {
			return fmt.Errorf("validation failed")
		}
	}
	return nil
}
