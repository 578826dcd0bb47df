package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bklybor/decision-table/pkg/dtable"
	"github.com/bklybor/decision-table/pkg/loader"
)

var decideFlags struct {
	file      string
	inputs    []string
	inputJSON string
	all       bool
	format    string
}

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Evaluate a table against an input",
	Long: `Evaluate a decision table file against an input and print the
resulting actions.

Input values are given as key=value pairs; values parse as booleans or
numbers where possible and fall back to strings. Use --input-json for
structured values.

Examples:
  # First matching row
  dtable decide --file weather.yaml --input weather=sunny --input day=monday

  # Every matching row, in table order
  dtable decide --file weather.yaml --input weather=sunny --input day=monday --all

  # Structured input
  dtable decide --file pricing.yaml --input-json '{"tier":"gold","region":"eu"}'

  # JSON output
  dtable decide --file weather.yaml --input weather=rainy --input day=friday --format json`,
	RunE: decideTable,
}

func init() {
	rootCmd.AddCommand(decideCmd)

	decideCmd.Flags().StringVarP(&decideFlags.file, "file", "f", "", "table file to evaluate (required)")
	decideCmd.Flags().StringArrayVarP(&decideFlags.inputs, "input", "i", nil, "input as key=value (repeatable)")
	decideCmd.Flags().StringVar(&decideFlags.inputJSON, "input-json", "", "input as a JSON object")
	decideCmd.Flags().BoolVar(&decideFlags.all, "all", false, "return every matching row instead of the first")
	decideCmd.Flags().StringVar(&decideFlags.format, "format", "text", "output format: text, json")
	_ = decideCmd.MarkFlagRequired("file")
}

func decideTable(cmd *cobra.Command, args []string) error {
	input, err := buildInput()
	if err != nil {
		return err
	}

	def, err := loader.NewParser().ParseFile(decideFlags.file)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	if decideFlags.all {
		decisions, err := def.Table.DecideAll(input)
		if err != nil {
			return err
		}
		return printDecisions(def.Name, decisions)
	}

	decision, err := def.Table.Decide(input)
	var noMatch *dtable.NoMatchError
	if errors.As(err, &noMatch) {
		fmt.Fprintf(os.Stderr, "no match: %v\n", noMatch)
		os.Exit(1)
	}
	if err != nil {
		return err
	}
	return printDecisions(def.Name, []dtable.Decision{decision})
}

// buildInput assembles the evaluation input from --input pairs and
// --input-json. JSON values win on key collisions.
func buildInput() (map[string]any, error) {
	input := make(map[string]any)

	for _, pair := range decideFlags.inputs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid input %q: expected key=value", pair)
		}
		input[key] = parseScalar(value)
	}

	if decideFlags.inputJSON != "" {
		var jsonInput map[string]any
		if err := json.Unmarshal([]byte(decideFlags.inputJSON), &jsonInput); err != nil {
			return nil, fmt.Errorf("invalid --input-json: %w", err)
		}
		for k, v := range jsonInput {
			input[k] = v
		}
	}

	if len(input) == 0 {
		return nil, fmt.Errorf("no input given: use --input or --input-json")
	}
	return input, nil
}

// parseScalar types a command-line value the way table cells are typed:
// booleans and numbers where they parse, strings otherwise.
func parseScalar(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func printDecisions(table string, decisions []dtable.Decision) error {
	if decideFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	}

	if len(decisions) == 0 {
		fmt.Printf("%s: no matching rows\n", table)
		return nil
	}
	for _, d := range decisions {
		fmt.Printf("row %d:\n", d.Row)
		for _, key := range sortedKeys(d.Actions) {
			fmt.Printf("  %s = %v\n", key, d.Actions[key])
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
