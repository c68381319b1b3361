package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/CTAG07/Bestiary/pkg/animals"
	"github.com/CTAG07/Bestiary/pkg/filter"
	"github.com/CTAG07/Bestiary/pkg/selector"
	"github.com/CTAG07/Bestiary/pkg/templating"
	"github.com/spf13/cobra"
)

// generateOptions holds the command-line overrides of a generate run.
type generateOptions struct {
	dataPath     string
	templatePath string
	outputPath   string
	attribute    string
	value        string
	all          bool
	dataset      string
	catalogPath  string
	layout       string
	strict       bool
	escapeHTML   bool
}

func generateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the animal page",
		Long: `Load the records, let the user pick a value of the filter attribute, and
write the page for the matching records.

If no record carries the filter attribute, this is reported and nothing is
written. --value skips the prompt; --all skips filtering entirely.

Example:
  bestiary generate
  bestiary generate --attribute diet --value carnivore
  bestiary generate --all --layout extended --output zoo.html
  bestiary generate --dataset zoo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataPath, "data", "", "path to the JSON data file")
	cmd.Flags().StringVar(&opts.templatePath, "template", "", "path to the page template")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "path of the generated page")
	cmd.Flags().StringVar(&opts.attribute, "attribute", "", "characteristic to filter on, e.g. skin_type")
	cmd.Flags().StringVar(&opts.value, "value", "", "filter value to use instead of prompting")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every record without filtering")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "read records from this catalog dataset")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "path to the catalog database")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "card layout: default, extended or custom")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the template has no placeholder")
	cmd.Flags().BoolVar(&opts.escapeHTML, "escape-html", false, "HTML-escape names and values in the cards")
	cmd.MarkFlagsMutuallyExclusive("all", "value")

	return cmd
}

// apply overlays the command-line options on the configuration.
func (o *generateOptions) apply(cmd *cobra.Command, c *Config) {
	if o.dataPath != "" {
		c.Data.DataPath = o.dataPath
	}
	if o.templatePath != "" {
		c.Data.TemplatePath = o.templatePath
	}
	if o.outputPath != "" {
		c.Data.OutputPath = o.outputPath
	}
	if o.attribute != "" {
		c.Data.FilterAttribute = o.attribute
	}
	if o.dataset != "" {
		c.Catalog.Dataset = o.dataset
	}
	if o.catalogPath != "" {
		c.Catalog.DatabasePath = o.catalogPath
	}
	if o.layout != "" {
		c.Templates.Layout = o.layout
	}
	if cmd.Flags().Changed("strict") {
		c.Templates.StrictPlaceholder = o.strict
	}
	if cmd.Flags().Changed("escape-html") {
		c.Templates.EscapeHTML = o.escapeHTML
	}
}

func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	opts.apply(cmd, a.config)
	out := cmd.OutOrStdout()

	records, err := loadRecords(cmd.Context(), a)
	if err != nil {
		return err
	}

	var (
		attr    animals.Attribute
		options []string
	)
	if !opts.all {
		if attr, err = animals.ParseAttribute(a.config.Data.FilterAttribute); err != nil {
			return fmt.Errorf("invalid filter attribute: %w", err)
		}
		options = filter.DistinctValues(records, attr)
		if len(options) == 0 {
			_, _ = fmt.Fprintf(out, "No %s options found in the data. Nothing was generated.\n", labelOf(attr))
			return nil
		}
	}

	// The template is read before prompting so a bad path fails without
	// any interaction.
	tm, err := templating.NewTemplateManager(a.logger, a.config.Templates, a.config.Data.TemplatePath)
	if err != nil {
		return err
	}

	if !opts.all {
		records, err = selectRecords(a, records, attr, options, opts.value, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	if err = tm.WritePage(a.config.Data.OutputPath, records); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Website was successfully generated to the file %s.\n", a.config.Data.OutputPath)
	return nil
}

// selectRecords determines the filter value among options, either from
// value or from the interactive selector, and returns the matching records.
func selectRecords(a *app, records []animals.Record, attr animals.Attribute, options []string, value string, in io.Reader, out io.Writer) ([]animals.Record, error) {
	s, err := selector.New(options)
	if err != nil {
		return nil, err
	}

	var choice string
	if value != "" {
		if s.Feed(value) != selector.Matched {
			if hint, ok := s.Suggest(value); ok {
				return nil, fmt.Errorf("%q is not a known %s, did you mean %q?", value, labelOf(attr), hint)
			}
			return nil, fmt.Errorf("%q is not a known %s", value, labelOf(attr))
		}
		choice, _ = s.Choice()
	} else {
		choice, err = s.Run(in, out, labelOf(attr))
		if err != nil {
			return nil, err
		}
	}

	selected := filter.FilterByValue(records, attr, choice)
	a.logger.Info("Filtered records", "attribute", string(attr), "value", choice, "matched", len(selected), "total", len(records))
	return selected, nil
}

// loadRecords reads the records from the catalog when a dataset is
// configured, and from the data file otherwise.
func loadRecords(ctx context.Context, a *app) ([]animals.Record, error) {
	if a.config.Catalog.Dataset != "" {
		store, closeFn, err := openCatalog(a)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		records, err := store.Records(ctx, a.config.Catalog.Dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		a.logger.Debug("Loaded records from catalog", "dataset", a.config.Catalog.Dataset, "count", len(records))
		return records, nil
	}

	records, err := animals.Load(a.config.Data.DataPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Loaded records from data file", "path", a.config.Data.DataPath, "count", len(records))
	return records, nil
}

// labelOf returns the lower-case human form of an attribute, e.g. "skin type".
func labelOf(attr animals.Attribute) string {
	return strings.ToLower(attr.Label())
}
