package main

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/CTAG07/Bestiary/pkg/animals"
	"github.com/CTAG07/Bestiary/pkg/catalog"
	"github.com/natefinch/atomic"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// openCatalog opens the configured catalog database, making sure its schema
// exists. The returned function closes both the store and the database.
func openCatalog(a *app) (*catalog.Store, func(), error) {
	db, err := openDB(a.config.Catalog.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err = catalog.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup catalog schema: %w", err)
	}
	store, err := catalog.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create catalog store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close catalog database", "error", err)
		}
	}, nil
}

// catalogFlags registers the flags shared by the catalog commands.
func catalogFlags(cmd *cobra.Command, a *app, datasetRequired bool) {
	cmd.Flags().String("catalog", "", "path to the catalog database")
	cmd.Flags().String("dataset", "", "dataset name")
	if datasetRequired {
		_ = cmd.MarkFlagRequired("dataset")
	}
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			a.config.Catalog.DatabasePath = path
		}
		if name, _ := cmd.Flags().GetString("dataset"); name != "" {
			a.config.Catalog.Dataset = name
		}
	}
}

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON data file into the catalog",
		Long: `Load a JSON data file and store it in the catalog under a dataset name,
replacing any dataset of the same name.

Example:
  bestiary import --data animals_data.json --dataset zoo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("data"); path != "" {
				a.config.Data.DataPath = path
			}
			records, err := animals.Load(a.config.Data.DataPath)
			if err != nil {
				return err
			}

			store, closeFn, err := openCatalog(a)
			if err != nil {
				return err
			}
			defer closeFn()

			info, err := store.Import(cmd.Context(), a.config.Catalog.Dataset, records)
			if err != nil {
				return fmt.Errorf("failed to import dataset: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into dataset %q.\n", info.Records, info.Name)
			return nil
		},
	}
	cmd.Flags().String("data", "", "path to the JSON data file")
	catalogFlags(cmd, a, true)
	return cmd
}

func datasetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openCatalog(a)
			if err != nil {
				return err
			}
			defer closeFn()

			datasets, err := store.Datasets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}
			if len(datasets) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "The catalog has no datasets.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Dataset", "Records", "Imported")
			for _, d := range datasets {
				row := []string{d.Name, strconv.Itoa(d.Records), d.ImportedAt.Local().Format(time.DateTime)}
				if err = table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	catalogFlags(cmd, a, false)
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a catalog dataset as a JSON data file",
		Long: `Write a catalog dataset in the data file format, to --output or stdout.

Example:
  bestiary export --dataset zoo --output zoo.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openCatalog(a)
			if err != nil {
				return err
			}
			defer closeFn()

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return store.Export(cmd.Context(), a.config.Catalog.Dataset, cmd.OutOrStdout())
			}
			var buf bytes.Buffer
			if err = store.Export(cmd.Context(), a.config.Catalog.Dataset, &buf); err != nil {
				return err
			}
			if err = atomic.WriteFile(output, &buf); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported dataset %q to %s.\n", a.config.Catalog.Dataset, output)
			return nil
		},
	}
	cmd.Flags().String("output", "", "file to write; stdout when empty")
	catalogFlags(cmd, a, true)
	return cmd
}

func removeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a dataset from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openCatalog(a)
			if err != nil {
				return err
			}
			defer closeFn()

			if err = store.Remove(cmd.Context(), a.config.Catalog.Dataset); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed dataset %q.\n", a.config.Catalog.Dataset)
			return nil
		},
	}
	catalogFlags(cmd, a, true)
	return cmd
}
