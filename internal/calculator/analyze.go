package calculator

import (
	"StockProphet/internal/model"

	"github.com/rs/zerolog/log"
)

// Analyze computes every dashboard indicator for a series. Individual
// failures fall back to neutral values instead of failing the whole set.
func Analyze(series model.Series) model.Analytics {
	a := model.Analytics{
		MovingAverage: []float64{},
		RSI:           50,
		RSIPeriod:     RSIPeriodFor(len(series)),
		Position:      0.5,
		Directions:    Directions(series),
	}
	if len(series) == 0 {
		return a
	}
	current := series[len(series)-1].Price

	if overlay, err := MovingAverage(series, DefaultSMAPeriod); err != nil {
		log.Debug().Err(err).Int("points", len(series)).Msg("SMA unavailable")
	} else {
		sma := overlay[len(overlay)-1]
		a.SMA = &sma
		a.MovingAverage = overlay
	}

	if rsi, err := CalculateRSI(series, a.RSIPeriod); err != nil {
		log.Warn().Err(err).Msg("RSI calculation failed, defaulting to 50")
	} else {
		a.RSI = rsi
	}

	if h, l, err := SeriesRange(series); err != nil {
		log.Warn().Err(err).Msg("range calculation failed")
		a.High, a.Low = current, current
	} else {
		a.High, a.Low = h, l
	}

	if pos, err := RangePosition(current, a.High, a.Low); err != nil {
		log.Warn().Err(err).Msg("range position calculation failed")
	} else {
		a.Position = pos
	}
	return a
}
