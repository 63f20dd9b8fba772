package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"ValueSentinel/internal/collector"
	"ValueSentinel/internal/model"
	"ValueSentinel/internal/notifier"
	"ValueSentinel/internal/recorder"
	"ValueSentinel/internal/strategy"
	"ValueSentinel/internal/tracker"
)

// historyLimit is the number of records /history shows.
const historyLimit = 10

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Engine      *strategy.Engine
	Tracker     *tracker.Tracker
	Notifier    notifier.Sender
	Recorder    recorder.Recorder
	Watchlist   []string
	Concurrency int
	Ctx         context.Context
}

// RunSummary is the outcome of one watchlist run.
type RunSummary struct {
	Reports  []model.Report
	Changes  []tracker.Change
	Failures map[string]error
}

// NewScheduler creates a new Scheduler. sender may be nil, in which case
// notifications are only logged.
func NewScheduler(ctx context.Context, col *collector.Collector, engine *strategy.Engine, tr *tracker.Tracker,
	sender notifier.Sender, rec recorder.Recorder, watchlist []string, concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = strategy.DefaultConcurrency
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Engine:      engine,
		Tracker:     tr,
		Notifier:    sender,
		Recorder:    rec,
		Watchlist:   watchlist,
		Concurrency: concurrency,
		Ctx:         ctx,
	}
}

// RegisterAll registers the analysis and digest tasks.
func (s *Scheduler) RegisterAll(analysisCron, digestCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("tickers", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) analysisTask() {
	if _, err := s.RunWatchlist(s.Ctx); err != nil {
		log.Error().Err(err).Msg("watchlist analysis aborted")
	}
}

func (s *Scheduler) digestTask() {
	log.Info().Msg("sending signal digest")
	s.trySend(notifier.FormatDigest(s.Tracker.States()))
}

// RunWatchlist collects and analyses every watchlist ticker. Per-ticker
// failures are reported in the summary; only cancellation aborts the run.
func (s *Scheduler) RunWatchlist(ctx context.Context) (*RunSummary, error) {
	log.Info().Int("tickers", len(s.Watchlist)).Msg("running watchlist analysis")
	data, failures, err := s.collectAll(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.Engine.AnalyzeBatch(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}

	summary := &RunSummary{Reports: reports, Failures: failures}
	for _, report := range reports {
		change, err := s.persist(report)
		if err != nil {
			summary.Failures[report.Ticker()] = err
			continue
		}
		summary.Changes = append(summary.Changes, change)
		if change.Flipped() {
			s.trySend(notifier.FormatChange(change, report))
		}
	}

	if len(summary.Failures) > 0 {
		tickers := make([]string, 0, len(summary.Failures))
		for t := range summary.Failures {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
		msgs := make([]string, 0, len(tickers))
		for _, t := range tickers {
			msgs = append(msgs, notifier.FormatFailure(t, summary.Failures[t]))
		}
		s.trySend(strings.Join(msgs, "\n"))
	}
	log.Info().Int("analysed", len(reports)).Int("failed", len(summary.Failures)).Msg("watchlist analysis complete")
	return summary, nil
}

// collectAll fetches every ticker concurrently. A fetch failure is recorded
// against its ticker and does not stop the others.
func (s *Scheduler) collectAll(ctx context.Context) ([]model.FinancialData, map[string]error, error) {
	results := make([]*model.FinancialData, len(s.Watchlist))
	failures := make(map[string]error)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, ticker := range s.Watchlist {
		g.Go(func() error {
			data, err := s.Collector.Collect(gctx, ticker, nil)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Error().Err(err).Str("ticker", ticker).Msg("collect failed")
				mu.Lock()
				failures[ticker] = err
				mu.Unlock()
				return nil
			}
			if data.Ticker == model.UnknownTicker {
				data.Ticker = ticker
			}
			results[i] = &data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	data := make([]model.FinancialData, 0, len(results))
	for _, d := range results {
		if d != nil {
			data = append(data, *d)
		}
	}
	return data, failures, nil
}

// AnalyzeTicker runs one ticker end to end.
func (s *Scheduler) AnalyzeTicker(ctx context.Context, ticker string) (model.Report, error) {
	data, err := s.Collector.Collect(ctx, ticker, nil)
	if err != nil {
		return nil, err
	}
	if data.Ticker == model.UnknownTicker {
		data.Ticker = ticker
	}
	report := s.Engine.AnalyzeData(data)
	if _, err := s.persist(report); err != nil {
		return report, err
	}
	return report, nil
}

// persist records report and updates the tracked signal. A recorder
// failure is logged but does not hide the signal change.
func (s *Scheduler) persist(report model.Report) (tracker.Change, error) {
	if err := s.Recorder.RecordAnalysis(recorder.NewAnalysisRecord(report)); err != nil {
		log.Error().Err(err).Str("ticker", report.Ticker()).Msg("record analysis")
	}
	change, err := s.Tracker.Observe(report)
	if err != nil {
		return change, fmt.Errorf("track signal: %w", err)
	}
	return change, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends the bot name in groups: /analyze@SentinelBot.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		ticker := strings.ToUpper(fields[1])
		report, err := s.AnalyzeTicker(ctx, ticker)
		if err != nil {
			if errors.Is(err, collector.ErrNotFound) {
				return fmt.Sprintf("No financials found for %s", ticker)
			}
			log.Error().Err(err).Str("ticker", ticker).Msg("analyze command failed")
			return notifier.FormatFailure(ticker, err)
		}
		return notifier.FormatReport(report)
	case "/signals":
		return notifier.FormatDigest(s.Tracker.States())
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history TICKER"
		}
		records, err := s.Recorder.History(fields[1], historyLimit)
		if err != nil {
			log.Error().Err(err).Msg("history command failed")
			return notifier.FormatFailure(fields[1], err)
		}
		return notifier.FormatHistory(fields[1], records)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /analyze TICKER\n• /signals\n• /history TICKER"

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Info().Str("message", text).Msg("notifier disabled")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
