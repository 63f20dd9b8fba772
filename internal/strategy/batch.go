package strategy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ValueSentinel/internal/model"
)

// AnalyzeBatch scores every bundle, at most the configured number at a
// time. Reports are returned in input order. Cancellation is checked
// before each bundle is scored; a started analysis always completes.
func (e *Engine) AnalyzeBatch(ctx context.Context, data []model.FinancialData) ([]model.Report, error) {
	reports := make([]model.Report, len(data))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range data {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = e.AnalyzeData(data[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
