package calculator

import (
	"errors"

	"StockProphet/internal/model"
)

// DefaultRSIPeriod is the longest RSI lookback used for dashboard analytics.
const DefaultRSIPeriod = 14

const minRSIPeriod = 2

// RSIPeriodFor picks a lookback that fits the horizon: half the price
// changes in the series, capped at DefaultRSIPeriod. A one-month series
// (5 weekly points) gets RSI(2), a year gets RSI(14).
func RSIPeriodFor(points int) int {
	period := (points - 1) / 2
	if period < minRSIPeriod {
		return minRSIPeriod
	}
	if period > DefaultRSIPeriod {
		return DefaultRSIPeriod
	}
	return period
}

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 points. Returns 50.0 if data is insufficient.
func CalculateRSI(series model.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(series) < period+1 {
		return 50.0, nil
	}

	prices := extractPrices(series)

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
