package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"StockProphet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *model.PredictionResult {
	day := model.NewDate(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	change := 5.0
	return &model.PredictionResult{
		Symbol: "AAPL",
		Months: 1,
		Source: model.SourceFallback,
		Notice: "Live prediction service is unavailable; showing simulated data.",
		Series: model.Series{
			{Date: day, Price: 200, Index: 0},
			{Date: model.Date{Time: day.AddDate(0, 0, 7)}, Price: 210, Index: 1},
		},
		Summary: model.SeriesSummary{StartPrice: 200, EndPrice: 210, PercentChange: &change, PointCount: 2},
	}
}

func TestFormatPrediction(t *testing.T) {
	o := model.Outlook{Score: 0.5, Label: "Upside", Factors: []model.FactorScore{
		{Name: "Trend", RawScore: 1, Weight: 0.5, Weighted: 0.5, Commentary: "+5.0% over horizon"},
	}}
	msg := FormatPrediction(sampleResult(), o)

	assert.Contains(t, msg, "<b>AAPL</b>")
	assert.Contains(t, msg, "(fallback)")
	assert.Contains(t, msg, "Start: 200.00 (2026-07-01)")
	assert.Contains(t, msg, "End: 210.00 (2026-07-08)")
	assert.Contains(t, msg, "Change: +5.00%")
	assert.Contains(t, msg, "Upside")
	assert.Contains(t, msg, "showing simulated data")
}

func TestFormatPrediction_Empty(t *testing.T) {
	msg := FormatPrediction(&model.PredictionResult{Symbol: "X", Months: 1, Source: model.SourceDemo}, model.Outlook{})
	assert.Contains(t, msg, "No data points.")
}

func TestFormatHistoryAndDigest(t *testing.T) {
	assert.Equal(t, "No predictions yet.", FormatHistory(nil))

	hist := FormatHistory([]model.HistoryEntry{{
		Timestamp: time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC),
		Symbol:    "<TSLA>", Months: 6, Source: model.SourceLive,
		StartPrice: 100, EndPrice: 90,
	}})
	assert.Contains(t, hist, "&lt;TSLA&gt; 6m")
	assert.Contains(t, hist, "(N/A)")

	digest := FormatDigest([]*model.PredictionResult{sampleResult()}, []model.Outlook{{Label: "Upside"}})
	assert.Contains(t, digest, "1 symbols")
	assert.Contains(t, digest, "AAPL: 200.00 → 210.00 (+5.00%) Upside")
	assert.Contains(t, digest, "simulated data")
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "", srv.URL)
	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestTelegramNotifier_SendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"ok":false}`)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "", srv.URL)
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")

	err = n.SendWithRetry(context.Background(), "hello", 0)
	assert.ErrorContains(t, err, "all 1 retries exhausted")
}

func TestGetUpdates(t *testing.T) {
	body := `{"ok":true,"result":[{"update_id":3,"message":{"text":"/digest"}},{"update_id":4}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/getUpdates", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("TOKEN", "42", "", srv.URL)
	updates, err := n.getUpdates(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, 3, updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, "/digest", updates[0].Message.Text)
	assert.Nil(t, updates[1].Message)

	body = `{"ok":false,"result":[]}`
	_, err = n.getUpdates(context.Background(), 3)
	assert.ErrorContains(t, err, "ok=false")
}

func TestTelegramNotifier_Polling(t *testing.T) {
	var polls int32
	var mu sync.Mutex
	var sent []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.AddInt32(&polls, 1) == 1 {
				_, _ = io.WriteString(w, `{"ok":true,"result":[{"update_id":7,"message":{"text":" /help "}}]}`)
				return
			}
			assert.Equal(t, "8", r.URL.Query().Get("offset"))
			_, _ = io.WriteString(w, `{"ok":true,"result":[]}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body map[string]string
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)
			mu.Lock()
			sent = append(sent, body["text"])
			mu.Unlock()
			_, _ = io.WriteString(w, `{"ok":true}`)
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	n := NewTelegramNotifier("TOKEN", "42", "", srv.URL)
	go func() {
		n.StartPolling(ctx, func(_ context.Context, cmd string) string { return "reply:" + cmd })
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&polls) >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"reply:/help"}, sent)
}
