package model

// Direction is the move of a point relative to the previous one.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Analytics holds indicators computed over a series for the dashboard.
type Analytics struct {
	SMA *float64 `json:"sma"`
	// MovingAverage is the rolling SMA overlay, aligned to the end of the
	// series. Empty when the series is shorter than the window.
	MovingAverage []float64   `json:"movingAverage"`
	RSI           float64     `json:"rsi"`
	RSIPeriod     int         `json:"rsiPeriod"`
	High          float64     `json:"high"`
	Low           float64     `json:"low"`
	Position      float64     `json:"position"` // 0.0 ~ 1.0
	Directions    []Direction `json:"directions"`
}

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"rawScore"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

// Outlook is the label shown above the chart.
type Outlook struct {
	Score   float64       `json:"score"`
	Label   string        `json:"label"`
	Factors []FactorScore `json:"factors"`
}
