package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bklybor/decision-table/pkg/dtable"
	"github.com/bklybor/decision-table/pkg/loader"
	"github.com/bklybor/decision-table/pkg/render"
	"github.com/bklybor/decision-table/pkg/store"
)

var catalogFlags struct {
	db string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the table catalog database",
	Long: `Manage decision tables persisted in a SQLite catalog.

The catalog stores parsed table definitions by name, so tables can be
distributed as a single database file instead of a directory of sources.

Examples:
  # Import a table file into the catalog
  dtable catalog save --db data/tables.db --file weather.yaml

  # List stored tables
  dtable catalog list --db data/tables.db

  # Render a stored table
  dtable catalog show --db data/tables.db --name weather

  # Remove a stored table
  dtable catalog delete --db data/tables.db --name weather`,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogFlags.db, "db", "data/tables.db", "catalog database path")

	catalogCmd.AddCommand(catalogSaveCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
}

var catalogSaveFlags struct {
	file string
}

var catalogSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Import a table file into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loader.NewParser().ParseFile(catalogSaveFlags.file)
		if err != nil {
			return fmt.Errorf("failed to load table: %w", err)
		}

		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		record := &store.TableRecord{
			Name:        def.Name,
			Description: def.Description,
			Table:       def.Table,
			UpdatedAt:   time.Now().UTC(),
		}
		if err := s.Save(context.Background(), record); err != nil {
			return err
		}

		fmt.Printf("saved %q (%d rows)\n", def.Name, def.Table.RowCount())
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		names, err := s.List(context.Background())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("catalog is empty")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var catalogShowFlags struct {
	name   string
	format string
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render a stored table",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		record, err := s.Load(context.Background(), catalogShowFlags.name)
		var notFound *store.NotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("table %q not in catalog", catalogShowFlags.name)
		}
		if err != nil {
			return err
		}

		var renderer dtable.Renderer
		switch catalogShowFlags.format {
		case "text":
			renderer = render.Text{}
		case "markdown":
			renderer = render.Markdown{}
		default:
			return fmt.Errorf("unknown format %q: expected text or markdown", catalogShowFlags.format)
		}

		if record.Description != "" {
			fmt.Printf("%s: %s\n\n", record.Name, record.Description)
		} else {
			fmt.Printf("%s\n\n", record.Name)
		}
		fmt.Println(record.Table.Render(renderer))
		return nil
	},
}

var catalogDeleteFlags struct {
	name string
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a stored table",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCatalog()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(context.Background(), catalogDeleteFlags.name); err != nil {
			return err
		}
		fmt.Printf("deleted %q\n", catalogDeleteFlags.name)
		return nil
	},
}

func init() {
	catalogSaveCmd.Flags().StringVarP(&catalogSaveFlags.file, "file", "f", "", "table file to import (required)")
	_ = catalogSaveCmd.MarkFlagRequired("file")

	catalogShowCmd.Flags().StringVarP(&catalogShowFlags.name, "name", "n", "", "table name (required)")
	catalogShowCmd.Flags().StringVar(&catalogShowFlags.format, "format", "text", "output format: text, markdown")
	_ = catalogShowCmd.MarkFlagRequired("name")

	catalogDeleteCmd.Flags().StringVarP(&catalogDeleteFlags.name, "name", "n", "", "table name (required)")
	_ = catalogDeleteCmd.MarkFlagRequired("name")
}

// openCatalog opens the SQLite catalog, creating its directory if needed.
func openCatalog() (store.Store, error) {
	if dir := filepath.Dir(catalogFlags.db); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}
	cfg := store.DefaultSQLiteConfig()
	cfg.Path = catalogFlags.db
	return store.NewSQLite(cfg)
}
