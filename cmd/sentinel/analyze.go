package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"ValueSentinel/internal/collector"
	"ValueSentinel/internal/model"
	"ValueSentinel/internal/narrative"
	"ValueSentinel/internal/notifier"
	"ValueSentinel/internal/recorder"
	"ValueSentinel/internal/resolver"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker|file]",
	Short: "Score one company and print the report",
	Long: `Score one company from the configured data source, or from a snapshot
file when the argument names an existing .json or .hjson file.

Examples:
  sentinel analyze AAPL
  sentinel analyze testdata/acme.hjson --market-cap 2.5e12 --format markdown
  sentinel analyze KO --record --narrate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format, _ := cmd.Flags().GetString("format")
		record, _ := cmd.Flags().GetBool("record")
		narrate, _ := cmd.Flags().GetBool("narrate")

		report, err := buildReport(cmd, args[0])
		if err != nil {
			return err
		}
		ticker := report.Ticker()

		var verdict *narrative.Verdict
		if narrate {
			v, err := narrateReport(ctx, ticker, report)
			if err != nil {
				return err
			}
			verdict = &v
		}

		if err := printReport(report, format); err != nil {
			return err
		}
		if verdict != nil {
			fmt.Printf("\nModel verdict: %s (confidence %.0f)\n%s\n", strings.ToUpper(string(verdict.Signal)), verdict.Confidence, verdict.Reasoning)
		}

		if record {
			rec, err := openRecorder(ctx, false)
			if err != nil {
				return err
			}
			defer rec.Close()
			ar := recorder.NewAnalysisRecord(report)
			ar.Verdict = verdict
			if err := rec.RecordAnalysis(ar); err != nil {
				return fmt.Errorf("record analysis: %w", err)
			}
			fmt.Printf("\nRecorded as %s\n", ar.ID)
		}
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt [ticker|file]",
	Short: "Print the language-model prompt for a company's analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := buildReport(cmd, args[0])
		if err != nil {
			return err
		}
		p, err := narrative.BuildPrompt(report.Ticker(), report)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n%s\n", p.System, p.User)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, promptCmd} {
		c.Flags().Float64("market-cap", 0, "market capitalisation override")
		c.Flags().Bool("explain", false, "log which raw field resolved each quantity (debug level)")
	}
	analyzeCmd.Flags().String("format", "text", "output format: text, json, markdown or html")
	analyzeCmd.Flags().Bool("record", false, "store the report in the configured database")
	analyzeCmd.Flags().Bool("narrate", false, "ask the configured narrative command for a verdict")
}

// buildReport loads a snapshot for arg and scores it.
func buildReport(cmd *cobra.Command, arg string) (model.Report, error) {
	snap, ticker, err := loadSnapshot(cmd.Context(), arg)
	if err != nil {
		return nil, err
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		explainPeriods(snap.Periods)
	}

	var marketCap *float64
	if cmd.Flags().Changed("market-cap") {
		mc, _ := cmd.Flags().GetFloat64("market-cap")
		marketCap = &mc
	}

	data := collector.FromSnapshot(snap, marketCap)
	if data.Ticker == model.UnknownTicker && ticker != "" {
		data.Ticker = ticker
	}

	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	return engine.AnalyzeData(data), nil
}

// loadSnapshot reads arg as a snapshot file when it is one, otherwise
// fetches it from the configured source. The returned ticker is the
// fallback name for records that carry no symbol.
func loadSnapshot(ctx context.Context, arg string) (*collector.Snapshot, string, error) {
	if isSnapshotFile(arg) {
		snap, err := collector.ReadSnapshotFile(arg)
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return snap, strings.ToUpper(name), nil
	}

	ticker := strings.ToUpper(arg)
	src := newSource()
	log.Debug().Str("ticker", ticker).Str("source", src.Name()).Msg("fetching financials")
	snap, err := src.FetchFinancials(ctx, ticker)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s from %s: %w", ticker, src.Name(), err)
	}
	return snap, ticker, nil
}

func isSnapshotFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".json", ".hjson":
	default:
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

func explainPeriods(periods []model.RawPeriodRecord) {
	for i, p := range periods {
		for _, m := range resolver.Explain(p.Data) {
			ev := log.Debug().Int("period", i).Str("date", p.Date).Str("quantity", m.Quantity.String())
			if m.Source == "" {
				ev.Msg("not available")
				continue
			}
			ev.Str("source", m.Source).Float64("value", m.Value).Msg("resolved")
		}
	}
}

func narrateReport(ctx context.Context, ticker string, report model.Report) (narrative.Verdict, error) {
	if cfg.Narrative.Command == "" {
		return narrative.Verdict{}, fmt.Errorf("narrative.command is not configured")
	}
	gen, err := narrative.NewCommandGenerator(cfg.Narrative.Command)
	if err != nil {
		return narrative.Verdict{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Narrative.Timeout)
	defer cancel()
	return narrative.Narrate(ctx, gen, ticker, report)
}

func printReport(report model.Report, format string) error {
	switch format {
	case "text", "":
		fmt.Print(notifier.FormatText(report))
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(out))
	case "markdown", "md":
		fmt.Print(notifier.FormatMarkdown(report))
	case "html":
		out, err := notifier.RenderHTML(notifier.FormatMarkdown(report))
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
