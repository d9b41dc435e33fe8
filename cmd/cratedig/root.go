package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
	"cratedig-hq/cratedig/pkg/client"
	"cratedig-hq/cratedig/pkg/config"
	"cratedig-hq/cratedig/pkg/history"
	"cratedig-hq/cratedig/pkg/ratelimit"
	"cratedig-hq/cratedig/pkg/retry"
	"cratedig-hq/cratedig/pkg/telemetry/logging"
	"cratedig-hq/cratedig/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "cratedig",
	Short: "Cratedig - rate-limited Discogs catalog client",
	Long: `Cratedig is a command-line client for the Discogs catalog API.

All requests are paced by a sliding window rate limiter, classified into a
typed error taxonomy, and retried with exponential backoff, so bulk lookups
stay inside the API's request budget.

Set CRATEDIG_API_TOKEN or configure api.token in the config file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, mapping typed errors to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// app bundles the wired-up engine for one command invocation.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *client.Client
	service *catalog.Service
	history *history.Store
}

// newApp loads configuration and assembles the dispatch stack. With no
// --config flag the configuration comes from defaults plus environment
// variables.
func newApp() (*app, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadWithEnvOverrides(cfgFile)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	limiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	opts := []client.Option{client.WithLogger(logging.WithComponent(logger, "client"))}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithObserver(store))
	}

	if cfg.Metrics.Enabled {
		opts = append(opts, client.WithObserver(
			metrics.NewRequestMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)))
	}

	c := client.New(client.Config{
		BaseURL:             cfg.API.BaseURL,
		Token:               cfg.API.Token,
		UserAgent:           cfg.API.UserAgent,
		Timeout:             cfg.API.Timeout,
		TransportRetries:    cfg.API.TransportRetries,
		MaxConcurrent:       cfg.API.MaxConcurrent,
		MaxIdleConns:        cfg.API.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.API.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.API.IdleConnTimeout,
	}, limiter, opts...)

	strategy := retry.NewWith(
		cfg.Retry.MaxRetries,
		cfg.Retry.BackoffFactor,
		cfg.Retry.MaxDelay,
		cfg.Retry.RetryableStatus,
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  c,
		service: catalog.NewService(c, strategy),
		history: store,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	a.client.Close()
	if a.history != nil {
		a.history.Close()
	}
}

// formatter returns the output formatter selected by --output.
func formatter() cli.Formatter {
	return cli.NewFormatter(cli.OutputFormat(outputFormat))
}

// jsonOutput reports whether --output json was requested.
func jsonOutput() bool {
	return outputFormat == string(cli.FormatJSON)
}
