// ValueSentinel scores companies against Buffett-style quality and value
// criteria and watches a list of tickers for signal changes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"ValueSentinel/internal/collector"
	"ValueSentinel/internal/config"
	"ValueSentinel/internal/logging"
	"ValueSentinel/internal/recorder"
	"ValueSentinel/internal/strategy"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sentinel",
	Short:         "ValueSentinel: Buffett-style fundamental scoring and signal watch",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		if path == "" {
			path = config.DefaultPath
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logging.Setup(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(rulesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ValueSentinel %s (%s)\n", version, commit)
	},
}

// newSource picks the HTTP source when a base URL is configured and the
// file source otherwise.
func newSource() collector.Source {
	if cfg.DataSource.BaseURL != "" {
		return collector.NewHTTPSource(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	}
	return collector.NewFileSource(cfg.DataSource.Dir)
}

func newEngine() (*strategy.Engine, error) {
	return strategy.NewEngine(strategy.DefaultRules(), strategy.WithConcurrency(cfg.Analysis.Concurrency))
}

// openRecorder prefers Postgres, then SQLite. When fallback is set a store
// that fails to open is replaced by the no-op recorder.
func openRecorder(ctx context.Context, fallback bool) (recorder.Recorder, error) {
	var (
		rec recorder.Recorder
		err error
	)
	switch {
	case cfg.UsePostgres():
		rec, err = recorder.NewPostgresRecorder(ctx, cfg.Database.PostgresURL)
	case cfg.Database.SQLitePath != "":
		rec, err = recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	default:
		return recorder.NewNoopRecorder(), nil
	}
	if err != nil {
		if !fallback {
			return nil, fmt.Errorf("open recorder: %w", err)
		}
		log.Warn().Err(err).Msg("init recorder failed, using noop")
		return recorder.NewNoopRecorder(), nil
	}
	return rec, nil
}
