package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"StockProphet/internal/auth"
	"StockProphet/internal/generator"
	"StockProphet/internal/predictor"
	"StockProphet/internal/recorder"
	"StockProphet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc, err := auth.NewMockService("", time.Hour)
	require.NoError(t, err)
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })

	g := generator.New()
	router := NewRouter(Deps{
		Auth:            authSvc,
		Predictions:     service.NewPredictionService(predictor.NewFallback(nil, g), rec),
		Demo:            predictor.NewDemo(g),
		Watchlist:       []string{"AAPL", "MSFT"},
		WatchlistMonths: 2,
		AllowedOrigins:  []string{"http://localhost:3000"},
	})
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "pw"})
	require.Equal(a.t, http.StatusOK, w.Code)
	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &sess))
	return sess.Token
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Grace", "email": "grace@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	w, env = api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Grace", "email": "grace@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)

	w, _ = api.do(http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := api.login("grace@example.com")

	w, env = api.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"email":"grace@example.com"`)

	w, _ = api.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPredictAndHistory(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodPost, "/api/predictions", "", map[string]any{"symbol": "AAPL", "months": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := api.login("trader@example.com")

	w, env := api.do(http.MethodPost, "/api/predictions", token, map[string]any{
		"symbol": "aapl", "months": 1, "news": []string{"record quarter"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Symbol string `json:"symbol"`
		Source string `json:"source"`
		Series []struct {
			Date  string  `json:"date"`
			Price float64 `json:"price"`
		} `json:"series"`
		Summary struct {
			PointCount    int      `json:"pointCount"`
			PercentChange *float64 `json:"percentChange"`
		} `json:"summary"`
		Analytics struct {
			Directions []string `json:"directions"`
		} `json:"analytics"`
		Outlook struct {
			Label string `json:"label"`
		} `json:"outlook"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "AAPL", report.Symbol)
	assert.Equal(t, "demo", report.Source)
	require.Len(t, report.Series, 5)
	assert.Equal(t, time.Now().Format("2006-01-02"), report.Series[0].Date)
	assert.Equal(t, 5, report.Summary.PointCount)
	assert.NotNil(t, report.Summary.PercentChange)
	assert.Len(t, report.Analytics.Directions, 5)
	assert.NotEmpty(t, report.Outlook.Label)

	for _, body := range []map[string]any{
		{"symbol": "AAPL", "months": 0},
		{"symbol": "AAPL", "months": 13},
		{"symbol": "", "months": 3},
		{"symbol": "   ", "months": 3},
	} {
		w, _ = api.do(http.MethodPost, "/api/predictions", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}

	w, env = api.do(http.MethodGet, "/api/predictions/history?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		Symbol string   `json:"symbol"`
		News   []string `json:"news"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "AAPL", entries[0].Symbol)
	assert.Equal(t, []string{"record quarter"}, entries[0].News)

	w, _ = api.do(http.MethodGet, "/api/predictions/history?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDemoEndpoint(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/predictions/demo?symbol=tsla&months=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		Symbol string            `json:"symbol"`
		Source string            `json:"source"`
		Series []json.RawMessage `json:"series"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "TSLA", report.Symbol)
	assert.Equal(t, "demo", report.Source)
	assert.Len(t, report.Series, 3*30/7+1)

	w, _ = api.do(http.MethodGet, "/api/predictions/demo", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodGet, "/api/predictions/demo?months=99", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodGet, "/api/predictions/demo?symbol=%20%20", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPremiumGating(t *testing.T) {
	api := newTestAPI(t)
	token := api.login("investor@example.com")

	w, _ := api.do(http.MethodGet, "/api/account/portfolio", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodPut, "/api/account/premium", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := api.do(http.MethodPut, "/api/account/premium", token, map[string]bool{"premium": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"premium":true`)

	w, env = api.do(http.MethodGet, "/api/account/portfolio", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reports []struct {
		Symbol string `json:"symbol"`
		Months int    `json:"months"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "AAPL", reports[0].Symbol)
	assert.Equal(t, 2, reports[0].Months)

	w, _ = api.do(http.MethodPut, "/api/account/premium", token, map[string]bool{"premium": false})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(http.MethodGet, "/api/account/portfolio", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
