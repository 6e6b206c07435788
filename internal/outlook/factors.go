package outlook

import (
	"fmt"

	"StockProphet/internal/model"
)

const (
	trendWeight     = 0.50
	momentumWeight  = 0.25
	deviationWeight = 0.25
)

func factor(name string, raw, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   raw,
		Weight:     weight,
		Weighted:   raw * weight,
		Commentary: commentary,
	}
}

// scoreTrend scores the overall percent change of the series.
// Weight: 0.50
func scoreTrend(summary model.SeriesSummary) model.FactorScore {
	if summary.PercentChange == nil {
		return factor("Trend", 0, trendWeight, "not enough points")
	}
	change := *summary.PercentChange

	var score float64
	switch {
	case change >= 10:
		score = 2.0
	case change >= 5:
		score = 1.0
	case change >= 1:
		score = 0.5
	case change > -1:
		score = 0
	case change > -5:
		score = -0.5
	case change > -10:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Trend", score, trendWeight, fmt.Sprintf("%+.1f%% over horizon", change))
}

// scoreMomentum scores the RSI of the series.
// Weight: 0.25
func scoreMomentum(a model.Analytics) model.FactorScore {
	rsi := a.RSI
	var score float64
	switch {
	case rsi >= 70:
		score = 1.0
	case rsi >= 55:
		score = 0.5
	case rsi > 45:
		score = 0
	case rsi > 30:
		score = -0.5
	default:
		score = -1.0
	}
	return factor("Momentum", score, momentumWeight, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreDeviation scores how far the final price sits from the moving average.
// Weight: 0.25
func scoreDeviation(summary model.SeriesSummary, a model.Analytics) model.FactorScore {
	if a.SMA == nil || *a.SMA == 0 {
		return factor("MA deviation", 0, deviationWeight, "SMA unavailable")
	}
	deviation := (summary.EndPrice - *a.SMA) / *a.SMA * 100

	var score float64
	switch {
	case deviation >= 5:
		score = 1.0
	case deviation >= 1:
		score = 0.5
	case deviation > -1:
		score = 0
	case deviation > -5:
		score = -0.5
	default:
		score = -1.0
	}
	return factor("MA deviation", score, deviationWeight, fmt.Sprintf("%+.1f%% vs SMA", deviation))
}
