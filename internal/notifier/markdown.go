package notifier

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ValueSentinel/internal/model"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// FormatMarkdown renders a report as a Markdown document with a score
// table and one section per analysis.
func FormatMarkdown(report model.Report) string {
	ticker := report.Ticker()
	res, ok := report.Result()
	if !ok {
		return "# Empty report\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s: %s\n\n", ticker, strings.ToUpper(string(res.Signal))))
	b.WriteString("| Analysis | Score | Max |\n|---|---:|---:|\n")
	for _, sec := range sections(res) {
		if sec.scored {
			b.WriteString(fmt.Sprintf("| %s | %.0f | %.0f |\n", sec.title, sec.score, sec.max))
		}
	}
	b.WriteString(fmt.Sprintf("| **Total** | **%.0f** | **%.0f** |\n\n", res.Score, res.MaxScore))

	b.WriteString(fmt.Sprintf("- Intrinsic value: %s\n", formatOptMoney(res.IntrinsicValueAnalysis.IntrinsicValue)))
	if oe := res.IntrinsicValueAnalysis.OwnerEarnings; oe != nil {
		b.WriteString(fmt.Sprintf("- Owner earnings: %s\n", formatMoney(*oe)))
	}
	b.WriteString(fmt.Sprintf("- Market cap: %s\n", formatOptMoney(res.MarketCap)))
	b.WriteString(fmt.Sprintf("- Margin of safety: %s\n", formatOptPercent(res.MarginOfSafety)))

	for _, sec := range sections(res) {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", sec.title))
		for _, d := range sec.details {
			b.WriteString("- " + d + "\n")
		}
	}
	return b.String()
}

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
