package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/inhmode/internal/portal"
)

type fetchOptions struct {
	file     string
	sample   string
	itemType string
	output   string
	refresh  bool
	timeout  time.Duration
}

func newFetchCmd() *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Search the portal and cache the result as a JSON file",
		Long: `Page through the portal /search/ endpoint and write every item to a JSON
array file. An existing file is reused unless --refresh is given.

Credentials are read from a keypairs file mapping names to key, secret and
server (config keys portal.keyfile and portal.keyname; portal.server overrides
the server).`,
		Example: `  # Variant samples of one sample in a processed VCF
  inhmode fetch --file GAPFIZ482GFI --sample NA12879

  # Every gene item
  inhmode fetch --type Gene -o genes.json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "Processed file accession to fetch variant samples for")
	f.StringVar(&opts.sample, "sample", "all", "Sample ID, or all")
	f.StringVar(&opts.itemType, "type", "", "Fetch every item of this type instead of variant samples")
	f.StringVarP(&opts.output, "output", "o", "", "Cache file (default: <data-dir>/cache/<name>.json)")
	f.BoolVar(&opts.refresh, "refresh", false, "Ignore an existing cache file")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "Timeout for each search request")
	f.String("keyfile", "", "Keypairs file (default: ~/keypairs.json)")
	f.String("key", "", "Keypair name (default: default)")
	f.String("server", "", "Portal server URL, overriding the keypair's")
	viper.BindPFlag("portal.keyfile", f.Lookup("keyfile"))
	viper.BindPFlag("portal.keyname", f.Lookup("key"))
	viper.BindPFlag("portal.server", f.Lookup("server"))

	return cmd
}

func runFetch(cmd *cobra.Command, opts fetchOptions) error {
	var (
		params url.Values
		name   string
	)
	switch {
	case opts.itemType != "" && opts.file != "":
		return &usageError{fmt.Errorf("--type and --file are mutually exclusive")}
	case opts.itemType != "":
		params = portal.TypeParams(opts.itemType)
		name = opts.itemType
	case opts.file != "":
		params = portal.VariantParams(opts.file, opts.sample)
		name = opts.file + "_" + opts.sample
	default:
		return &usageError{fmt.Errorf("one of --file or --type is required")}
	}

	kp, err := portal.LoadKeypair(viper.GetString("portal.keyfile"), viper.GetString("portal.keyname"))
	if err != nil {
		if server := viper.GetString("portal.server"); server == "" {
			return err
		}
		// Anonymous access to a configured server.
		logger.Debug("no keypair, searching anonymously", zap.Error(err))
	}
	if server := viper.GetString("portal.server"); server != "" {
		kp.Server = server
	}

	path := opts.output
	if path == "" {
		path = filepath.Join(dataDir(), "cache", name+".json")
	}
	if opts.refresh {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove cache file: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := portal.NewClient(kp)
	client.SetLogger(logger)
	client.SetHTTPClient(&http.Client{Timeout: opts.timeout})

	result, err := client.LoadCached(ctx, path, params)
	if err != nil {
		return err
	}

	items, _ := result.Children()
	logger.Info("fetched", zap.String("path", path), zap.Int("items", len(items)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
