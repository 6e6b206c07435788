package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockProphet/internal/auth"
	"StockProphet/internal/config"
	"StockProphet/internal/generator"
	"StockProphet/internal/notifier"
	"StockProphet/internal/predictor"
	"StockProphet/internal/recorder"
	"StockProphet/internal/scheduler"
	"StockProphet/internal/server"
	"StockProphet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	setupLogging(cfg)
	log.Info().Str("env", cfg.Server.Environment).Msg("StockProphet starting...")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Predictor: remote backend when configured, demo generator otherwise
	gen := generator.New()
	var primary predictor.Predictor
	if cfg.Predictor.Endpoint != "" {
		primary = predictor.NewRemote(cfg.Predictor.Endpoint, cfg.Predictor.APIKey, cfg.Proxy, cfg.Predictor.Timeout)
	}
	fallback := predictor.NewFallback(primary, gen)
	log.Info().Str("mode", string(fallback.Mode())).Msg("predictor ready")

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	authSvc, err := auth.NewMockService(cfg.Auth.StoreFile, cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("init auth store")
	}

	predictions := service.NewPredictionService(fallback, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram is optional
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, "")
		sender = tn
	}

	sched := scheduler.NewScheduler(ctx, predictions, sender, cfg.Watchlist.Symbols, cfg.Watchlist.Months)
	if err := sched.Register(cfg.Schedule.DigestCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	// Runs before rec.Close, so no background task records after close.
	defer sched.Stop()

	if tn != nil {
		sched.Go(func() { tn.StartPolling(ctx, sched.HandleCommand) })
		log.Info().Msg("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing digest now")
		sched.Go(func() { sched.RunDigestNow() })
	}

	router := server.NewRouter(server.Deps{
		Auth:            authSvc,
		Predictions:     predictions,
		Demo:            predictor.NewDemo(gen),
		Watchlist:       cfg.Watchlist.Symbols,
		WatchlistMonths: cfg.Watchlist.Months,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	})
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("StockProphet stopped")
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
