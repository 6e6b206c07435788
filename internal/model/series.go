package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of a series date.
const DateLayout = "2006-01-02"

// Date is a calendar date at day resolution.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts "YYYY-MM-DD" as well as full RFC 3339 timestamps,
// which some prediction backends return.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = NewDate(t)
	return nil
}

// PricePoint is a single dated price in a series.
type PricePoint struct {
	Date  Date    `json:"date"`
	Price float64 `json:"price"`
	Index int     `json:"-"` // position in the series, used for up/down colouring
}

// Series is an ordered, ascending-by-date price trajectory.
type Series []PricePoint

// SeriesSummary holds the scalar statistics shown next to a chart.
// PercentChange is nil when the series has fewer than two points.
type SeriesSummary struct {
	StartPrice    float64  `json:"startPrice"`
	EndPrice      float64  `json:"endPrice"`
	PercentChange *float64 `json:"percentChange"`
	PointCount    int      `json:"pointCount"`
}
