package outlook

import "StockProphet/internal/model"

// Tiers maps a minimum total score to a label, highest first.
var Tiers = []struct {
	MinScore float64
	Label    string
}{
	{1.0, "Strong upside"},
	{0.3, "Upside"},
	{-0.3, "Neutral"},
	{-1.0, "Downside"},
}

// DefaultLabel is used for scores below every tier.
const DefaultLabel = "Strong downside"

func mapLabel(totalScore float64) string {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Label
		}
	}
	return DefaultLabel
}

// Evaluate scores a series' summary and analytics into an outlook.
func Evaluate(summary model.SeriesSummary, a model.Analytics) model.Outlook {
	factors := []model.FactorScore{
		scoreTrend(summary),
		scoreMomentum(a),
		scoreDeviation(summary, a),
	}
	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}
	return model.Outlook{
		Score:   total,
		Label:   mapLabel(total),
		Factors: factors,
	}
}
