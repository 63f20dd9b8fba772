package recorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/narrative"
)

// ErrNotFound is returned by Get and Delete for unknown IDs.
var ErrNotFound = errors.New("analysis record not found")

// AnalysisRecord is one stored analysis. Report is kept verbatim.
type AnalysisRecord struct {
	ID             string             `json:"id"`
	Ticker         string             `json:"ticker"`
	Signal         model.Signal       `json:"signal"`
	Score          float64            `json:"score"`
	MaxScore       float64            `json:"maxScore"`
	MarginOfSafety *float64           `json:"marginOfSafety"`
	Report         model.Report       `json:"report"`
	Verdict        *narrative.Verdict `json:"verdict,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// NewAnalysisRecord summarises report under a fresh ID. CreatedAt is kept
// at millisecond precision, the resolution both stores persist.
func NewAnalysisRecord(report model.Report) *AnalysisRecord {
	rec := &AnalysisRecord{
		ID:        uuid.NewString(),
		Ticker:    report.Ticker(),
		Report:    report,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if res, ok := report.Result(); ok {
		rec.Signal = res.Signal
		rec.Score = res.Score
		rec.MaxScore = res.MaxScore
		rec.MarginOfSafety = res.MarginOfSafety
	}
	return rec
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) error
	Get(id string) (*AnalysisRecord, error)
	History(ticker string, limit int) ([]*AnalysisRecord, error)
	Delete(id string) error
	Close() error
}

// validID rejects strings that cannot be record IDs before they reach a
// query.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
