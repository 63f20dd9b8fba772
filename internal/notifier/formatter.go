package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/recorder"
	"ValueSentinel/internal/tracker"
)

var signalIcons = map[model.Signal]string{
	model.SignalBullish: "🟢",
	model.SignalBearish: "🔴",
	model.SignalNeutral: "⚪",
}

func icon(s model.Signal) string {
	if i, ok := signalIcons[s]; ok {
		return i
	}
	return "❔"
}

// formatMoney renders large amounts with a magnitude suffix.
func formatMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func formatOptMoney(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return formatMoney(*v)
}

func formatOptPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v*100)
}

// FormatReport formats one analysis into a Telegram HTML message.
func FormatReport(report model.Report) string {
	ticker := report.Ticker()
	res, ok := report.Result()
	if !ok {
		return "⚠️ empty report"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> | %s | %s\n\n", icon(res.Signal), html.EscapeString(ticker),
		strings.ToUpper(string(res.Signal)), time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Score: <b>%.0f / %.0f</b>\n", res.Score, res.MaxScore))
	b.WriteString(fmt.Sprintf("  Fundamentals: %.0f/%.0f\n", res.FundamentalAnalysis.Score, res.FundamentalAnalysis.MaxScore))
	b.WriteString(fmt.Sprintf("  Consistency: %.0f/%.0f\n", res.ConsistencyAnalysis.Score, res.ConsistencyAnalysis.MaxScore))
	b.WriteString(fmt.Sprintf("  Moat: %.0f/%.0f\n", res.MoatAnalysis.Score, res.MoatAnalysis.MaxScore))
	b.WriteString(fmt.Sprintf("  Management: %.0f/%.0f\n\n", res.ManagementAnalysis.Score, res.ManagementAnalysis.MaxScore))

	b.WriteString(fmt.Sprintf("Intrinsic value: %s\n", formatOptMoney(res.IntrinsicValueAnalysis.IntrinsicValue)))
	b.WriteString(fmt.Sprintf("Market cap: %s\n", formatOptMoney(res.MarketCap)))
	b.WriteString(fmt.Sprintf("Margin of safety: <b>%s</b>\n", formatOptPercent(res.MarginOfSafety)))
	return b.String()
}

// FormatChange announces a signal flip.
func FormatChange(c tracker.Change, report model.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>%s</b> signal changed: %s %s → %s %s\n\n", html.EscapeString(c.Ticker),
		icon(c.From), c.From, icon(c.To), c.To))
	b.WriteString(FormatReport(report))
	return b.String()
}

// FormatDigest summarises all tracked tickers.
func FormatDigest(states []tracker.TickerState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>ValueSentinel digest</b> | %s\n\n", time.Now().Format("2006-01-02")))
	if len(states) == 0 {
		b.WriteString("No tickers analysed yet.\n")
		return b.String()
	}
	counts := map[model.Signal]int{}
	for _, s := range states {
		counts[s.LastSignal]++
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %.0f/%.0f MoS %s (%d run(s))\n", icon(s.LastSignal),
			html.EscapeString(s.Ticker), s.LastScore, s.MaxScore, formatOptPercent(s.MarginOfSafety), s.Streak))
	}
	b.WriteString(fmt.Sprintf("\nBullish %d | Neutral %d | Bearish %d\n",
		counts[model.SignalBullish], counts[model.SignalNeutral], counts[model.SignalBearish]))
	return b.String()
}

// FormatHistory lists stored analyses, newest first.
func FormatHistory(ticker string, records []*recorder.AnalysisRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s history</b>\n\n", html.EscapeString(strings.ToUpper(ticker))))
	if len(records) == 0 {
		b.WriteString("No stored analyses.\n")
		return b.String()
	}
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%s %s %.0f/%.0f MoS %s <code>%s</code>\n", r.CreatedAt.Format("2006-01-02 15:04"),
			icon(r.Signal), r.Score, r.MaxScore, formatOptPercent(r.MarginOfSafety), r.ID))
	}
	return b.String()
}

// FormatFailure reports an analysis that could not run.
func FormatFailure(ticker string, err error) string {
	return fmt.Sprintf("⚠️ <b>%s</b> analysis failed: %s", html.EscapeString(ticker), html.EscapeString(err.Error()))
}

// FormatText renders a report as plain text for terminals.
func FormatText(report model.Report) string {
	ticker := report.Ticker()
	res, ok := report.Result()
	if !ok {
		return "empty report\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s (score %.0f/%.0f)\n", ticker, strings.ToUpper(string(res.Signal)), res.Score, res.MaxScore))
	b.WriteString(fmt.Sprintf("Intrinsic value %s | Market cap %s | Margin of safety %s\n",
		formatOptMoney(res.IntrinsicValueAnalysis.IntrinsicValue), formatOptMoney(res.MarketCap), formatOptPercent(res.MarginOfSafety)))
	for _, sec := range sections(res) {
		b.WriteString(fmt.Sprintf("\n%s", sec.title))
		if sec.scored {
			b.WriteString(fmt.Sprintf(" %.0f/%.0f", sec.score, sec.max))
		}
		b.WriteString("\n")
		for _, d := range sec.details {
			b.WriteString("  - " + d + "\n")
		}
	}
	return b.String()
}

type section struct {
	title      string
	scored     bool
	score, max float64
	details    []string
}

func sections(res model.AnalysisResult) []section {
	return []section{
		{"Fundamentals", true, res.FundamentalAnalysis.Score, res.FundamentalAnalysis.MaxScore, res.FundamentalAnalysis.Details},
		{"Consistency", true, res.ConsistencyAnalysis.Score, res.ConsistencyAnalysis.MaxScore, res.ConsistencyAnalysis.Details},
		{"Moat", true, res.MoatAnalysis.Score, res.MoatAnalysis.MaxScore, res.MoatAnalysis.Details},
		{"Management", true, res.ManagementAnalysis.Score, res.ManagementAnalysis.MaxScore, res.ManagementAnalysis.Details},
		{"Intrinsic value", false, 0, 0, res.IntrinsicValueAnalysis.Details},
	}
}
