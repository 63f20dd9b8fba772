package recorder

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ *AnalysisRecord) error { return nil }
func (n *NoopRecorder) Get(_ string) (*AnalysisRecord, error)  { return nil, ErrNotFound }
func (n *NoopRecorder) History(_ string, _ int) ([]*AnalysisRecord, error) {
	return nil, nil
}
func (n *NoopRecorder) Delete(_ string) error { return ErrNotFound }
func (n *NoopRecorder) Close() error          { return nil }
