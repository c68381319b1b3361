package main

import (
	"fmt"
	"strconv"

	"github.com/CTAG07/Bestiary/pkg/animals"
	"github.com/CTAG07/Bestiary/pkg/filter"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func optionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the filter values found in the data",
		Long: `Print every distinct value of the filter attribute with the number of
records carrying it, as offered by the generate prompt.

Example:
  bestiary options
  bestiary options --attribute diet --dataset zoo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetString("attribute"); v != "" {
				a.config.Data.FilterAttribute = v
			}
			if v, _ := cmd.Flags().GetString("data"); v != "" {
				a.config.Data.DataPath = v
			}
			if v, _ := cmd.Flags().GetString("dataset"); v != "" {
				a.config.Catalog.Dataset = v
			}
			if v, _ := cmd.Flags().GetString("catalog"); v != "" {
				a.config.Catalog.DatabasePath = v
			}

			attr, err := animals.ParseAttribute(a.config.Data.FilterAttribute)
			if err != nil {
				return fmt.Errorf("invalid filter attribute: %w", err)
			}
			records, err := loadRecords(cmd.Context(), a)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			options := filter.Options(records, attr)
			if len(options) == 0 {
				_, _ = fmt.Fprintf(out, "No %s options found in the data.\n", labelOf(attr))
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.Header("#", attr.Label(), "Records")
			for i, o := range options {
				if err = table.Append([]string{strconv.Itoa(i + 1), o.Display, strconv.Itoa(o.Count)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	cmd.Flags().String("attribute", "", "characteristic to list, e.g. skin_type")
	cmd.Flags().String("data", "", "path to the JSON data file")
	cmd.Flags().String("dataset", "", "read records from this catalog dataset")
	cmd.Flags().String("catalog", "", "path to the catalog database")
	return cmd
}
