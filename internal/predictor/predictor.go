package predictor

import (
	"context"

	"StockProphet/internal/model"
)

// Predictor produces a price series for a prediction request.
type Predictor interface {
	Predict(ctx context.Context, req model.PredictionRequest) (model.Series, error)
	Name() string
}
