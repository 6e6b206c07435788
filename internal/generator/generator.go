package generator

import (
	"math/rand/v2"
	"time"

	"StockProphet/internal/model"
)

const (
	// MinPrice is the floor applied to every generated price.
	MinPrice = 10.0

	basePriceLow   = 150.0
	basePriceRange = 100.0
	volatility     = 0.02
	trend          = 0.001

	stepDays     = 7
	daysPerMonth = 30
)

// SeriesGenerator produces synthetic price trajectories. It stands in for a
// prediction model when none is configured or the configured one fails.
type SeriesGenerator struct {
	rand func() float64
	now  func() time.Time
}

// Option configures a SeriesGenerator.
type Option func(*SeriesGenerator)

// WithRand sets the uniform [0,1) source. The default is the global
// math/rand/v2 source, which is safe for concurrent use.
func WithRand(f func() float64) Option {
	return func(g *SeriesGenerator) { g.rand = f }
}

// WithClock sets the function used to determine "today".
func WithClock(f func() time.Time) Option {
	return func(g *SeriesGenerator) { g.now = f }
}

// New creates a SeriesGenerator.
func New(opts ...Option) *SeriesGenerator {
	g := &SeriesGenerator{rand: rand.Float64, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one point per 7-day step from today up to and including
// today+months*30 days. The symbol does not influence the output.
// A non-positive horizon yields only the day-0 point.
func (g *SeriesGenerator) Generate(symbol string, months int) model.Series {
	today := model.NewDate(g.now())
	basePrice := basePriceLow + g.rand()*basePriceRange

	lastDay := months * daysPerMonth
	if lastDay < 0 {
		lastDay = 0
	}

	series := make(model.Series, 0, lastDay/stepDays+1)
	for i := 0; i <= lastDay; i += stepDays {
		r := (g.rand() - 0.5) * volatility
		price := basePrice * (1 + trend*float64(i) + r)
		if price < MinPrice {
			price = MinPrice
		}
		series = append(series, model.PricePoint{
			Date:  model.Date{Time: today.AddDate(0, 0, i)},
			Price: price,
			Index: len(series),
		})
	}
	return series
}

// Summarize derives the display statistics of a series. It is total over
// all series, including the empty one.
func Summarize(series model.Series) model.SeriesSummary {
	summary := model.SeriesSummary{PointCount: len(series)}
	if len(series) == 0 {
		return summary
	}
	summary.StartPrice = series[0].Price
	summary.EndPrice = series[len(series)-1].Price
	if len(series) >= 2 && summary.StartPrice != 0 {
		change := (summary.EndPrice - summary.StartPrice) / summary.StartPrice * 100
		summary.PercentChange = &change
	}
	return summary
}
