package predictor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"StockProphet/internal/generator"
	"StockProphet/internal/model"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrEmptyPrediction is returned when the backend answers with no points.
	ErrEmptyPrediction = errors.New("prediction backend returned no points")
	// ErrInvalidPoint is returned for missing or repeated dates and for
	// non-positive or non-finite prices.
	ErrInvalidPoint = errors.New("prediction backend returned an invalid point")
)

// Remote calls an external prediction service over HTTP.
type Remote struct {
	Endpoint string
	client   *resty.Client
}

// NewRemote creates a remote predictor with optional proxy support.
// A zero timeout leaves the request bounded only by the caller's context.
func NewRemote(endpoint, apiKey, proxyURL string, timeout time.Duration) *Remote {
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &Remote{Endpoint: endpoint, client: client}
}

func (r *Remote) Name() string { return "remote" }

// remoteRequest is the JSON body posted to the prediction backend.
type remoteRequest struct {
	Symbol string   `json:"symbol"`
	Months int      `json:"months"`
	News   []string `json:"news"`
}

func (r *Remote) Predict(ctx context.Context, req model.PredictionRequest) (model.Series, error) {
	news := req.News
	if news == nil {
		news = []string{}
	}
	var points []model.PricePoint
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(remoteRequest{Symbol: req.Symbol, Months: req.Months, News: news}).
		SetResult(&points).
		ForceContentType("application/json").
		Post(r.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("remote predict: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("remote predict: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return normalize(points)
}

// normalize puts backend points into the same shape the generator produces:
// ascending dates, floor-clamped prices, sequential indexes.
func normalize(points []model.PricePoint) (model.Series, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPrediction
	}
	for _, p := range points {
		if p.Date.IsZero() {
			return nil, fmt.Errorf("%w: missing date (price %v)", ErrInvalidPoint, p.Price)
		}
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return nil, fmt.Errorf("%w: price %v on %s", ErrInvalidPoint, p.Price, p.Date)
		}
	}

	series := make(model.Series, len(points))
	copy(series, points)
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date.Time) })

	for i := range series {
		if i > 0 && !series[i].Date.After(series[i-1].Date.Time) {
			return nil, fmt.Errorf("%w: repeated date %s", ErrInvalidPoint, series[i].Date)
		}
		if series[i].Price < generator.MinPrice {
			series[i].Price = generator.MinPrice
		}
		series[i].Index = i
	}
	return series, nil
}
