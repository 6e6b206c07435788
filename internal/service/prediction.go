package service

import (
	"context"
	"strings"

	"StockProphet/internal/calculator"
	"StockProphet/internal/model"
	"StockProphet/internal/outlook"
	"StockProphet/internal/predictor"
	"StockProphet/internal/recorder"

	"github.com/rs/zerolog/log"
)

// Report is everything the dashboard renders for one prediction.
type Report struct {
	*model.PredictionResult
	Analytics model.Analytics `json:"analytics"`
	Outlook   model.Outlook   `json:"outlook"`
}

// PredictionService runs predictions through the fallback policy, derives
// analytics and records the outcome.
type PredictionService struct {
	predictor *predictor.Fallback
	recorder  recorder.Recorder
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(p *predictor.Fallback, rec recorder.Recorder) *PredictionService {
	return &PredictionService{predictor: p, recorder: rec}
}

// Predict always returns a report; recording failures are only logged.
func (s *PredictionService) Predict(ctx context.Context, req model.PredictionRequest) *Report {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))

	res := s.predictor.Predict(ctx, req)
	report := Analyze(&res)

	if err := s.recorder.RecordPrediction(ctx, &recorder.PredictionEvent{Request: req, Result: &res}); err != nil {
		log.Error().Err(err).Str("symbol", req.Symbol).Msg("record prediction")
	}
	log.Info().
		Str("symbol", res.Symbol).
		Int("months", res.Months).
		Str("source", string(res.Source)).
		Int("points", res.Summary.PointCount).
		Msg("prediction served")
	return report
}

// Portfolio predicts every symbol without recording, for the premium
// portfolio page.
func (s *PredictionService) Portfolio(ctx context.Context, symbols []string, months int) []*Report {
	reports := make([]*Report, 0, len(symbols))
	for _, symbol := range symbols {
		res := s.predictor.Predict(ctx, model.PredictionRequest{
			Symbol: strings.ToUpper(strings.TrimSpace(symbol)),
			Months: months,
		})
		reports = append(reports, Analyze(&res))
	}
	return reports
}

// History returns recent predictions, newest first.
func (s *PredictionService) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	return s.recorder.History(ctx, limit)
}

// Mode reports whether predictions come from a live backend or the demo generator.
func (s *PredictionService) Mode() model.Source {
	return s.predictor.Mode()
}

// Analyze attaches analytics and an outlook to a result.
func Analyze(res *model.PredictionResult) *Report {
	a := calculator.Analyze(res.Series)
	return &Report{
		PredictionResult: res,
		Analytics:        a,
		Outlook:          outlook.Evaluate(res.Summary, a),
	}
}
