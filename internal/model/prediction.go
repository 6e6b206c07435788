package model

import "time"

// Source tells where a prediction's series came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceDemo     Source = "demo"
	SourceFallback Source = "fallback"
)

// PredictionRequest is what the dashboard form submits.
type PredictionRequest struct {
	Symbol string   `json:"symbol" validate:"required,min=1,max=12"`
	Months int      `json:"months" validate:"min=1,max=12"`
	News   []string `json:"news"`
}

// PredictionResult is the series handed back to the caller together with
// its provenance.
type PredictionResult struct {
	Symbol      string        `json:"symbol"`
	Months      int           `json:"months"`
	Source      Source        `json:"source"`
	Notice      string        `json:"notice,omitempty"`
	Series      Series        `json:"series"`
	Summary     SeriesSummary `json:"summary"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// HistoryEntry is one past question/answer pair in the prediction log.
type HistoryEntry struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Symbol        string    `json:"symbol"`
	Months        int       `json:"months"`
	News          []string  `json:"news"`
	Source        Source    `json:"source"`
	StartPrice    float64   `json:"startPrice"`
	EndPrice      float64   `json:"endPrice"`
	PercentChange *float64  `json:"percentChange"`
	PointCount    int       `json:"pointCount"`
}
