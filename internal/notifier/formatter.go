package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockProphet/internal/model"
)

// FormatPrediction formats a prediction result into a Telegram message.
func FormatPrediction(res *model.PredictionResult, o model.Outlook) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | %d-month outlook (%s)\n\n",
		html.EscapeString(res.Symbol), res.Months, res.Source))

	s := res.Summary
	if s.PointCount == 0 {
		b.WriteString("No data points.\n")
		return b.String()
	}
	first := res.Series[0].Date
	last := res.Series[len(res.Series)-1].Date
	b.WriteString(fmt.Sprintf("Start: %.2f (%s)\n", s.StartPrice, first))
	b.WriteString(fmt.Sprintf("End: %.2f (%s)\n", s.EndPrice, last))
	b.WriteString(fmt.Sprintf("Change: %s\n", FormatChange(s.PercentChange)))
	b.WriteString(fmt.Sprintf("Points: %d\n\n", s.PointCount))

	b.WriteString(fmt.Sprintf("🧭 <b>%s</b> (score %+.2f)\n", o.Label, o.Score))
	for _, f := range o.Factors {
		b.WriteString(fmt.Sprintf("  %s (%s): %+.1f ×%.2f = %+.3f\n",
			f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted))
	}

	if res.Notice != "" {
		b.WriteString(fmt.Sprintf("\n⚠️ %s\n", html.EscapeString(res.Notice)))
	}
	return b.String()
}

// FormatHistory lists recent predictions, newest first.
func FormatHistory(entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return "No predictions yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent predictions</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %s %dm  %.2f → %.2f (%s) [%s]\n",
			e.Timestamp.Format("2006-01-02 15:04"), html.EscapeString(e.Symbol), e.Months,
			e.StartPrice, e.EndPrice, FormatChange(e.PercentChange), e.Source))
	}
	return b.String()
}

// FormatDigest joins per-symbol lines for the scheduled watchlist digest.
func FormatDigest(results []*model.PredictionResult, outlooks []model.Outlook) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Watchlist digest</b> | %d symbols\n\n", len(results)))
	for i, res := range results {
		label := ""
		if i < len(outlooks) {
			label = outlooks[i].Label
		}
		b.WriteString(fmt.Sprintf("%s: %.2f → %.2f (%s) %s\n",
			html.EscapeString(res.Symbol), res.Summary.StartPrice, res.Summary.EndPrice,
			FormatChange(res.Summary.PercentChange), label))
		if res.Notice != "" {
			b.WriteString("  ⚠️ simulated data\n")
		}
	}
	return b.String()
}

// FormatChange renders a percent change, or N/A when it is not defined.
func FormatChange(change *float64) string {
	if change == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *change)
}
