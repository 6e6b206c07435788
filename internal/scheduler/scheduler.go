package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"StockProphet/internal/model"
	"StockProphet/internal/notifier"
	"StockProphet/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sender delivers a formatted message; *notifier.TelegramNotifier satisfies it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist digest on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron        *cron.Cron
	Predictions *service.PredictionService
	Sender      Sender // nil disables delivery
	Watchlist   []string
	Months      int
	Ctx         context.Context

	tasks sync.WaitGroup
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *service.PredictionService, sender Sender, watchlist []string, months int) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Predictions: svc,
		Sender:      sender,
		Watchlist:   watchlist,
		Months:      months,
		Ctx:         ctx,
	}
}

// Register adds the digest task. An empty expression leaves the scheduler idle.
func (s *Scheduler) Register(digestCron string) error {
	if digestCron == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(digestCron, func() { s.runDigest() }); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Go runs fn in a goroutine that Stop waits for. Long-running tasks such as
// command polling must return once Ctx is cancelled.
func (s *Scheduler) Go(fn func()) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		fn()
	}()
}

// Stop stops the cron scheduler and waits for running jobs and tasks
// started with Go.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.tasks.Wait()
	log.Info().Msg("scheduler stopped")
}

// RunDigestNow executes the digest task immediately (for RUN_ON_START).
func (s *Scheduler) RunDigestNow() string {
	return s.runDigest()
}

// runDigest predicts every watchlist symbol and sends one combined message.
// Returns the message, or "" when the watchlist is empty.
func (s *Scheduler) runDigest() string {
	if len(s.Watchlist) == 0 {
		log.Info().Msg("watchlist empty, skipping digest")
		return ""
	}
	log.Info().Strs("symbols", s.Watchlist).Msg("running watchlist digest")

	results := make([]*model.PredictionResult, 0, len(s.Watchlist))
	outlooks := make([]model.Outlook, 0, len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		report := s.Predictions.Predict(s.Ctx, model.PredictionRequest{Symbol: symbol, Months: s.Months})
		results = append(results, report.PredictionResult)
		outlooks = append(outlooks, report.Outlook)
	}

	msg := notifier.FormatDigest(results, outlooks)
	s.trySend(msg)
	return msg
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch strings.ToLower(fields[0]) {
	case "/predict":
		if len(fields) < 2 {
			return "Usage: /predict SYMBOL [MONTHS]"
		}
		months := s.Months
		if len(fields) >= 3 {
			m, err := strconv.Atoi(fields[2])
			if err != nil || m < 1 || m > 12 {
				return "MONTHS must be a number between 1 and 12"
			}
			months = m
		}
		report := s.Predictions.Predict(ctx, model.PredictionRequest{Symbol: fields[1], Months: months})
		return notifier.FormatPrediction(report.PredictionResult, report.Outlook)
	case "/history":
		entries, err := s.Predictions.History(ctx, 10)
		if err != nil {
			log.Error().Err(err).Msg("load history")
			return "History is unavailable right now."
		}
		return notifier.FormatHistory(entries)
	case "/digest":
		if msg := s.runDigest(); msg == "" {
			return "Watchlist is empty."
		}
		return ""
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /predict SYMBOL [MONTHS]\n• /history\n• /digest"

func (s *Scheduler) trySend(text string) {
	if s.Sender == nil {
		return
	}
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
