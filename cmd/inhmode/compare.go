package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/inhmode/internal/mapping"
	"github.com/inodb/inhmode/internal/output"
)

func newCompareCmd() *cobra.Command {
	opts := mapping.DefaultLoadOptions()
	var summary bool

	cmd := &cobra.Command{
		Use:   "compare [flags] <old-table> <new-table>",
		Short: "Compare two versions of a tab-delimited field mapping table",
		Long: `Load two mapping tables keyed by a column and report keys present in only one
of them and, for shared keys, the columns whose values differ.`,
		Example: `  inhmode compare mapping_v1.tsv mapping_v2.tsv
  inhmode compare --skip 0 --key name --drop no,comment a.tsv b.tsv`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := mapping.Load(args[0], opts)
			if err != nil {
				return err
			}
			after, err := mapping.Load(args[1], opts)
			if err != nil {
				return err
			}

			d := mapping.Compare(before, after)
			if err := output.WriteDiff(cmd.OutOrStdout(), d); err != nil {
				return fmt.Errorf("write diff: %w", err)
			}
			if summary {
				output.WriteDiffSummary(cmd.ErrOrStderr(), d)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.SkipLines, "skip", opts.SkipLines, "Non-blank lines before the header")
	cmd.Flags().StringVar(&opts.KeyColumn, "key", opts.KeyColumn, "Key column")
	cmd.Flags().StringSliceVar(&opts.Drop, "drop", opts.Drop, "Columns to ignore")
	cmd.Flags().BoolVar(&summary, "summary", true, "Print a summary to stderr")

	return cmd
}
