package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"ValueSentinel/internal/collector"
	"ValueSentinel/internal/notifier"
	"ValueSentinel/internal/scheduler"
	"ValueSentinel/internal/tracker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the configured tickers on a schedule and answer Telegram commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		now, _ := cmd.Flags().GetBool("now")
		log.Info().Str("version", version).Msg("ValueSentinel starting")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		src := newSource()
		log.Info().Str("source", src.Name()).Msg("data source")
		col := collector.NewCollector(src)

		engine, err := newEngine()
		if err != nil {
			return err
		}

		tr, err := tracker.NewTracker(cfg.StateFile)
		if err != nil {
			return fmt.Errorf("init tracker: %w", err)
		}

		rec, err := openRecorder(ctx, true)
		if err != nil {
			return err
		}
		defer rec.Close()

		var tn *notifier.TelegramNotifier
		var sender notifier.Sender
		if cfg.NotifierEnabled() {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			sender = tn
		} else {
			log.Warn().Msg("telegram not configured, notifications will only be logged")
		}

		sched := scheduler.NewScheduler(ctx, col, engine, tr, sender, rec, cfg.Watchlist, cfg.Analysis.Concurrency)
		if err := sched.RegisterAll(cfg.Schedule.AnalysisCron, cfg.Schedule.DigestCron); err != nil {
			return fmt.Errorf("register cron tasks: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info().Msg("telegram polling started")
		}

		if now || os.Getenv("RUN_ON_START") == "true" {
			log.Info().Msg("running watchlist analysis now")
			go func() {
				if _, err := sched.RunWatchlist(ctx); err != nil {
					log.Error().Err(err).Msg("initial analysis aborted")
				}
			}()
		}

		log.Info().Strs("watchlist", cfg.Watchlist).Msg("ValueSentinel is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
			log.Info().Msg("shutdown signal received, stopping...")
		case <-ctx.Done():
		}
		cancel()
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("now", false, "analyse the watchlist immediately on start")
}
