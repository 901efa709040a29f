// Package main provides the inhmode command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/portal"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

// usageError marks errors caused by bad arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	err := root.Execute()
	logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", root.Name())
		return ExitUsage
	}
	return ExitError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inhmode",
		Short: "Mendelian inheritance mode classifier for trio variant calls",
		Long: `inhmode labels the genotype of each family member at a variant site and
infers the inheritance modes consistent with the trio.`,
		Example: `  # Classify records cached from a portal search
  inhmode classify variants.json

  # Sorted spreadsheet-friendly table, stored for later lookups
  inhmode classify --sort --excel --store -o trio.tsv variants.json.gz

  # Reference table of every biallelic trio scenario
  inhmode scenarios`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd); err != nil {
				return err
			}
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			logger = l
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.inhmode.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().String("data-dir", "", "Directory for the result store and portal cache (default: ~/.inhmode)")
	root.PersistentFlags().Int("workers", 0, "Number of classification workers (default: number of CPUs)")
	viper.BindPFlag("data_dir", root.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("workers", root.PersistentFlags().Lookup("workers"))

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	root.AddCommand(newClassifyCmd())
	root.AddCommand(newScenariosCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newSexCheckCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newLookupCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inhmode version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

// initConfig loads .env, then the config file and INHMODE_ environment
// variables into viper.
func initConfig(cmd *cobra.Command) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix("inhmode")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("portal.keyname", "default")
	viper.SetDefault("portal.keyfile", portal.DefaultKeyfile())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".inhmode")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// dataDir returns the configured data directory.
func dataDir() string {
	if dir := viper.GetString("data_dir"); dir != "" {
		return expandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".inhmode"
	}
	return filepath.Join(home, ".inhmode")
}

// defaultStorePath is the DuckDB file used when --db is not given.
func defaultStorePath() string {
	return filepath.Join(dataDir(), "results.duckdb")
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// openOutput returns stdout for an empty path.
func openOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}
