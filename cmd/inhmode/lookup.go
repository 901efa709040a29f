package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/duckdb"
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/output"
)

func newLookupCmd() *cobra.Command {
	var (
		dbPath   string
		mode     string
		runID    string
		runs     bool
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "lookup [flags] [variant-id]",
		Short: "Query stored classification results",
		Long: `Query the result store written by "classify --store", either by variant ID
(as shown in the title column, e.g. "1:12345 A>G") from the most recent run that
classified it, or by inheritance mode within a run.`,
		Example: `  inhmode lookup "1:12345 A>G"
  inhmode lookup --mode recessive
  inhmode lookup --mode "de novo (strong)" --run 0b7e...
  inhmode lookup --runs
  inhmode lookup --clear`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runs && !clearAll && mode == "" && len(args) == 0 {
				return &usageError{fmt.Errorf("a variant ID, --mode, --runs or --clear is required")}
			}
			if clearAll && (runs || mode != "" || len(args) > 0) {
				return &usageError{fmt.Errorf("--clear cannot be combined with a query")}
			}
			if mode != "" && len(args) > 0 {
				return &usageError{fmt.Errorf("--mode cannot be combined with a variant ID")}
			}

			if dbPath == "" {
				dbPath = defaultStorePath()
			}
			store, err := duckdb.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open result store: %w", err)
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if clearAll {
				if err := store.ClearResults(); err != nil {
					return err
				}
				logger.Info("cleared result store", zap.String("db", store.Path()))
				return nil
			}
			if runs {
				all, err := store.Runs()
				if err != nil {
					return err
				}
				for _, r := range all {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n", r.No, r.ID,
						r.StartedAt.Format("2006-01-02 15:04:05"), r.Input.Path, r.Records, r.Failed, r.Status)
				}
				return nil
			}

			var results []duckdb.StoredResult
			if mode != "" {
				results, err = store.SearchByMode(runID, inheritance.Mode(mode))
			} else {
				results, err = store.LookupVariant(args[0])
			}
			if err != nil {
				return err
			}
			if len(results) == 0 {
				logger.Info("no stored results found")
			}
			return output.WriteStored(w, results)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Result store path (default: <data-dir>/results.duckdb)")
	cmd.Flags().StringVar(&mode, "mode", "", "Inheritance mode to search for")
	cmd.Flags().StringVar(&runID, "run", "", "Run ID for --mode (default: most recent run)")
	cmd.Flags().BoolVar(&runs, "runs", false, "List stored runs")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete every stored run and result")

	return cmd
}
