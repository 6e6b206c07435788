package recorder

import (
	"context"

	"StockProphet/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPrediction(context.Context, *PredictionEvent) error { return nil }
func (n *NoopRecorder) History(context.Context, int) ([]model.HistoryEntry, error) {
	return []model.HistoryEntry{}, nil
}
func (n *NoopRecorder) Close() error { return nil }
