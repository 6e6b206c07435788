package recorder

import (
	"context"

	"StockProphet/internal/model"
)

// PredictionEvent holds one answered prediction request.
type PredictionEvent struct {
	Request model.PredictionRequest
	Result  *model.PredictionResult
}

// Recorder persists the prediction history shown next to the dashboard.
type Recorder interface {
	RecordPrediction(ctx context.Context, evt *PredictionEvent) error
	History(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	Close() error
}
