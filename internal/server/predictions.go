package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockProphet/internal/generator"
	"StockProphet/internal/model"
	"StockProphet/internal/service"

	"github.com/gin-gonic/gin"
)

var errBadLimit = errors.New("limit must be between 1 and 100")

// demoQuery is the query string of the public demo chart.
type demoQuery struct {
	Symbol string `form:"symbol" validate:"required,max=12"`
	Months int    `form:"months" validate:"min=1,max=12"`
}

func (s *Server) demo(c *gin.Context) {
	q := demoQuery{Symbol: "AAPL", Months: 6}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	q.Symbol = strings.TrimSpace(q.Symbol)
	if err := s.validate.Struct(q); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	req := model.PredictionRequest{Symbol: strings.ToUpper(q.Symbol), Months: q.Months}
	series, err := s.deps.Demo.Predict(c.Request.Context(), req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	res := &model.PredictionResult{
		Symbol:      req.Symbol,
		Months:      req.Months,
		Source:      model.SourceDemo,
		Series:      series,
		Summary:     generator.Summarize(series),
		GeneratedAt: time.Now(),
	}
	respond(c, http.StatusOK, service.Analyze(res), "demo data")
}

func (s *Server) predict(c *gin.Context) {
	var req model.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	// Blank symbols must fail "required", so trim before validating.
	req.Symbol = strings.TrimSpace(req.Symbol)
	if err := s.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	report := s.deps.Predictions.Predict(c.Request.Context(), req)
	respond(c, http.StatusOK, report, "prediction ready")
}

func (s *Server) history(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			respondError(c, http.StatusBadRequest, errBadLimit)
			return
		}
		limit = n
	}
	entries, err := s.deps.Predictions.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	respond(c, http.StatusOK, entries, "")
}
