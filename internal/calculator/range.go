package calculator

import (
	"errors"
	"math"

	"StockProphet/internal/model"
)

// ErrEmptySeries is returned by calculations that need at least one point.
var ErrEmptySeries = errors.New("no points in series")

// SeriesRange returns the highest and lowest price in the series.
func SeriesRange(series model.Series) (high, low float64, err error) {
	if len(series) == 0 {
		return 0, 0, ErrEmptySeries
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range series {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return high, low, nil
}

// RangePosition returns where the current price sits within the range (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

// Directions labels each point against its predecessor. The first point is
// always flat.
func Directions(series model.Series) []model.Direction {
	dirs := make([]model.Direction, len(series))
	for i, p := range series {
		switch {
		case i == 0:
			dirs[i] = model.DirectionFlat
		case p.Price > series[i-1].Price:
			dirs[i] = model.DirectionUp
		case p.Price < series[i-1].Price:
			dirs[i] = model.DirectionDown
		default:
			dirs[i] = model.DirectionFlat
		}
	}
	return dirs
}
