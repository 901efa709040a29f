package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/inhmode/internal/mapping"
	"github.com/inodb/inhmode/internal/nested"
	"github.com/inodb/inhmode/internal/output"
)

func newFieldsCmd() *cobra.Command {
	var (
		depth    int
		field    string
		top      int
		values   bool
		all      bool
		mappings []string
		links    []string
	)

	cmd := &cobra.Command{
		Use:   "fields [flags] <json-file>",
		Short: "List the dotted field paths of a JSON document, or summarize one field",
		Example: `  inhmode fields variants.json
  inhmode fields --depth 2 variants.json
  inhmode fields --field variant.genes.genes_most_severe_gene.display_title variants.json
  inhmode fields --field variant.CHROM --values variants.json
  inhmode fields --all --mapping variant_table.tsv --mapping gene_table.tsv variants.json
  inhmode fields --field variant.clinvar_variant_id --values --links variant_table.tsv variants.json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if values && field == "" {
				return &usageError{fmt.Errorf("--values requires --field")}
			}
			if len(links) > 0 && !values {
				return &usageError{fmt.Errorf("--links requires --field and --values")}
			}

			doc, err := nested.ParseFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			switch {
			case all:
				fields, err := mappedFields(mappings)
				if err != nil {
					return err
				}
				return output.WriteFieldTable(w, nested.ReportAll(doc, fields, 0))
			case field == "":
				return output.WriteKeys(w, nested.Keys(doc, depth))
			case values:
				vals := make([]string, 0)
				for _, v := range nested.Values(doc, field) {
					vals = append(vals, fmt.Sprint(v))
				}
				if len(links) == 0 {
					return output.WriteKeys(w, vals)
				}
				templates, err := loadLinks(links)
				if err != nil {
					return err
				}
				expanded := mapping.DBXrefLinks(templates, map[string][]string{field: vals})
				return output.WriteValueLinks(w, vals, expanded[field])
			default:
				output.WriteFieldReport(w, nested.Report(doc, field, top))
				return nil
			}
		},
	}

	cmd.Flags().IntVar(&depth, "depth", -1, "Maximum nesting depth (-1: unlimited)")
	cmd.Flags().StringVar(&field, "field", "", "Summarize the values of this dotted field")
	cmd.Flags().IntVar(&top, "top", 10, "Number of most frequent values to show")
	cmd.Flags().BoolVar(&values, "values", false, "Print every value of --field, one per line")
	cmd.Flags().BoolVar(&all, "all", false, "Write a statistics table for every field")
	cmd.Flags().StringArrayVar(&mappings, "mapping", nil, "Restrict --all to the imported fields of this mapping table (repeatable)")
	cmd.Flags().StringArrayVar(&links, "links", nil, "Print a cross-reference link next to each value, from this mapping table (repeatable)")

	return cmd
}

// mappedFields returns the imported field paths of the given mapping tables
// in order, or nil when none are given.
func mappedFields(paths []string) ([]string, error) {
	var fields []string
	seen := make(map[string]bool)
	for _, p := range paths {
		t, err := mapping.Load(p, mapping.DefaultLoadOptions())
		if err != nil {
			return nil, err
		}
		list, err := mapping.FieldList(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields, nil
}

func loadLinks(paths []string) (map[string]string, error) {
	tables := make([]*mapping.Table, 0, len(paths))
	for _, p := range paths {
		t, err := mapping.Load(p, mapping.DefaultLoadOptions())
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return mapping.Links(tables...)
}
