package predictor

import (
	"context"
	"time"

	"StockProphet/internal/generator"
	"StockProphet/internal/model"

	"github.com/rs/zerolog/log"
)

// FallbackNotice is shown to the user whenever simulated data replaces a
// failed live prediction.
const FallbackNotice = "Live prediction service is unavailable; showing simulated data."

// Fallback tries a primary predictor and substitutes generated data when it
// fails. It never returns an error.
type Fallback struct {
	Primary   Predictor // nil means demo mode
	Generator *generator.SeriesGenerator
	now       func() time.Time
}

// NewFallback creates a Fallback. primary may be nil.
func NewFallback(primary Predictor, g *generator.SeriesGenerator) *Fallback {
	return &Fallback{Primary: primary, Generator: g, now: time.Now}
}

// Mode reports which path Predict takes before any call is made.
func (f *Fallback) Mode() model.Source {
	if f.Primary == nil {
		return model.SourceDemo
	}
	return model.SourceLive
}

// Predict returns a live series when possible and a generated one otherwise.
func (f *Fallback) Predict(ctx context.Context, req model.PredictionRequest) model.PredictionResult {
	result := model.PredictionResult{
		Symbol:      req.Symbol,
		Months:      req.Months,
		GeneratedAt: f.now(),
	}

	if f.Primary == nil {
		result.Source = model.SourceDemo
		result.Series = f.Generator.Generate(req.Symbol, req.Months)
	} else if series, err := f.Primary.Predict(ctx, req); err != nil {
		log.Warn().Err(err).
			Str("predictor", f.Primary.Name()).
			Str("symbol", req.Symbol).
			Int("months", req.Months).
			Msg("prediction failed, using generated series")
		result.Source = model.SourceFallback
		result.Notice = FallbackNotice
		result.Series = f.Generator.Generate(req.Symbol, req.Months)
	} else {
		result.Source = model.SourceLive
		result.Series = series
	}

	result.Summary = generator.Summarize(result.Series)
	return result
}
