package predictor

import (
	"context"

	"StockProphet/internal/generator"
	"StockProphet/internal/model"
)

// Demo serves synthetic series from a SeriesGenerator. It never fails.
type Demo struct {
	Generator *generator.SeriesGenerator
}

// NewDemo creates a demo predictor.
func NewDemo(g *generator.SeriesGenerator) *Demo {
	return &Demo{Generator: g}
}

func (d *Demo) Name() string { return "demo" }

// Predict ignores the news items; they only matter to a real model.
func (d *Demo) Predict(_ context.Context, req model.PredictionRequest) (model.Series, error) {
	return d.Generator.Generate(req.Symbol, req.Months), nil
}
