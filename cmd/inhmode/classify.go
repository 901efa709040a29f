package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/duckdb"
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/output"
	"github.com/inodb/inhmode/internal/record"
)

type classifyOptions struct {
	format    string
	output    string
	sorted    bool
	excel     bool
	withTitle bool
	store     bool
	dbPath    string
	summary   bool
}

func newClassifyCmd() *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify [flags] <input-file>",
		Short: "Classify inheritance modes for variant records",
		Long: `Classify every record of a JSON array or JSON Lines file (optionally gzipped)
and write genotype labels and inheritance modes in input order.

Samples without a role are assigned one from the "roles" config key, which maps
sample IDs to "role:sex", e.g. NA12879_sample: self:female.`,
		Example: `  inhmode classify variants.json
  inhmode classify -f json --title variants.jsonl.gz
  inhmode classify --sort --excel -o trio.tsv variants.json
  cat variants.jsonl | inhmode classify --store -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "table", "Output format: table, json")
	f.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	f.BoolVar(&opts.sorted, "sort", false, "Sort table rows by chromosome, genotypes and novoPP")
	f.BoolVar(&opts.excel, "excel", false, "Prefix genotype and AD columns with ' for spreadsheets")
	f.BoolVar(&opts.withTitle, "title", false, "Include the variant title in JSON output")
	f.BoolVar(&opts.store, "store", false, "Also write results to the DuckDB result store")
	f.StringVar(&opts.dbPath, "db", "", "Result store path (default: <data-dir>/results.duckdb)")
	f.BoolVar(&opts.summary, "summary", true, "Print an inheritance mode summary to stderr")

	return cmd
}

func runClassify(cmd *cobra.Command, input string, opts classifyOptions) error {
	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	var writer inheritance.ResultWriter
	switch opts.format {
	case "table", "tab":
		writer = output.NewTabWriter(out, output.TableOptions{Sorted: opts.sorted, Excel: opts.excel})
	case "json":
		writer = output.NewJSONWriter(out, opts.withTitle)
	default:
		return &usageError{fmt.Errorf("unknown output format %q", opts.format)}
	}

	parser, err := record.NewParser(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w (check that the file path is correct)", err)
		}
		return err
	}
	defer parser.Close()

	var src record.RecordParser = parser
	roles, err := record.ParseRoleMap(viper.GetStringMapString("roles"))
	if err != nil {
		return fmt.Errorf("config roles: %w", err)
	}
	if len(roles) > 0 {
		logger.Debug("assigning roles from config", zap.Stringer("roles", roles))
		src = record.WithRoles(parser, roles)
	}

	var (
		store     *duckdb.Store
		run       *duckdb.Run
		runWriter *duckdb.RunWriter
	)
	if opts.store {
		path := opts.dbPath
		if path == "" {
			path = defaultStorePath()
		}
		store, err = duckdb.Open(path)
		if err != nil {
			return fmt.Errorf("open result store: %w", err)
		}
		defer store.Close()

		run, err = store.BeginRun(input)
		if err != nil {
			return err
		}
		logger.Info("storing results", zap.String("db", store.Path()), zap.Int("run", run.No), zap.String("run_id", run.ID))
		runWriter = duckdb.NewRunWriter(store, run)
		writer = output.MultiWriter(writer, runWriter)
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	c := inheritance.NewClassifier()
	c.SetLogger(logger)
	c.SetWorkers(viper.GetInt("workers"))

	stats, err := c.ClassifyAll(src, writer)
	if err != nil {
		logger.Error("classification stopped",
			zap.Int("records_read", parser.RecordNumber()),
			zap.Int("records_written", stats.Classified),
			zap.Error(err))
	}

	if store != nil {
		run.Records, run.Failed = stats.Records, stats.Failed
		if err != nil {
			// Keep what was classified before the error.
			run.Status = duckdb.RunAborted
			if ferr := runWriter.Flush(); ferr != nil {
				logger.Warn("flushing stored results", zap.Error(ferr))
			}
		}
		if ferr := store.FinishRun(run); ferr != nil {
			return errors.Join(err, ferr)
		}
	}
	if err != nil {
		return err
	}

	if stats.Failed > 0 {
		logger.Warn("some records could not be classified",
			zap.Int("failed", stats.Failed), zap.Int("records", stats.Records))
	}
	if opts.summary {
		output.WriteModeSummary(cmd.ErrOrStderr(), stats.Modes, stats.Classified)
	}
	return closeOut()
}
