package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bklybor/decision-table/pkg/dtable"
	"github.com/bklybor/decision-table/pkg/loader"
	"github.com/bklybor/decision-table/pkg/render"
)

var showFlags struct {
	file   string
	format string
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a table",
	Long: `Render a decision table file in a human-readable layout.

Wildcard cells render as "*".

Examples:
  # Aligned text table
  dtable show --file weather.yaml

  # Markdown table for documentation
  dtable show --file weather.yaml --format markdown`,
	RunE: showTable,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showFlags.file, "file", "f", "", "table file to render (required)")
	showCmd.Flags().StringVar(&showFlags.format, "format", "text", "output format: text, markdown")
	_ = showCmd.MarkFlagRequired("file")
}

func showTable(cmd *cobra.Command, args []string) error {
	def, err := loader.NewParser().ParseFile(showFlags.file)
	if err != nil {
		return fmt.Errorf("failed to load table: %w", err)
	}

	var renderer dtable.Renderer
	switch showFlags.format {
	case "text":
		renderer = render.Text{}
	case "markdown":
		renderer = render.Markdown{}
	default:
		return fmt.Errorf("unknown format %q: expected text or markdown", showFlags.format)
	}

	if def.Description != "" {
		fmt.Printf("%s: %s\n\n", def.Name, def.Description)
	} else {
		fmt.Printf("%s\n\n", def.Name)
	}
	fmt.Println(def.Table.Render(renderer))
	return nil
}
