package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dtable",
	Short: "Decision table toolkit",
	Long: `Dtable evaluates decision tables: ordered rows of condition cells
matched against an input, yielding the actions of the first matching row
or of every matching row.

Table files are YAML or CSV; cells holding "*" match any input value.

  - lint validates table files
  - show renders a table as text or markdown
  - decide evaluates a table against an input
  - serve runs a table service with hot reload, metrics, and journaling`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
