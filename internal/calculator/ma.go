package calculator

import (
	"errors"

	"StockProphet/internal/model"
)

// DefaultSMAPeriod is the moving-average window shown on the dashboard,
// four weekly points or roughly one month.
const DefaultSMAPeriod = 4

// CalculateSMA computes the simple moving average of the most recent prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// MovingAverage returns the rolling SMA for every point that has a full
// window behind it. The result is aligned to the end of the series.
func MovingAverage(series model.Series, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	prices := extractPrices(series)
	if len(prices) < period {
		return nil, errors.New("not enough data for SMA calculation")
	}
	out := make([]float64, 0, len(prices)-period+1)
	for end := period; end <= len(prices); end++ {
		ma, err := CalculateSMA(prices[:end], period)
		if err != nil {
			return nil, err
		}
		out = append(out, ma)
	}
	return out, nil
}

func extractPrices(series model.Series) []float64 {
	prices := make([]float64, len(series))
	for i, p := range series {
		prices[i] = p.Price
	}
	return prices
}
