package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oba-crm/backend/internal/ai"
	"github.com/oba-crm/backend/internal/config"
	httpapi "github.com/oba-crm/backend/internal/http"
	"github.com/oba-crm/backend/internal/priority"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
	"github.com/oba-crm/backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "oba-crm-backend").Logger()

	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL == "" {
		st = store.NewMemory(store.DefaultMarkets())
		logger.Info().Msg("using in-memory store")
	} else {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		st = pg
	}
	defer st.Close()

	var analyzer ai.Analyzer
	if cfg.AIURL == "" {
		rule := &ai.RuleAnalyzer{ModelVersion: cfg.AIModelVersion}
		if cfg.AISimulateDelay {
			rule.MinDelay = 200 * time.Millisecond
			rule.MaxDelay = 700 * time.Millisecond
		}
		analyzer = rule
		logger.Info().Str("model", cfg.AIModelVersion).Msg("using rule-based analyzer")
	} else {
		analyzer = &ai.HTTPAnalyzer{BaseURL: cfg.AIURL}
		logger.Info().Str("url", cfg.AIURL).Msg("using external analyzer")
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	feedback := &service.FeedbackService{Store: st, AI: analyzer, Notifier: hub, Logger: logger}
	callCenter := &service.CallCenterService{Store: st, Scorer: &priority.WeightedScorePolicy{}, Notifier: hub, Logger: logger}
	surveys := &service.SurveyService{Store: st, Notifier: hub, Logger: logger}

	router := httpapi.Router(cfg, httpapi.Deps{
		Store:      st,
		AI:         analyzer,
		Feedback:   feedback,
		CallCenter: callCenter,
		Surveys:    surveys,
		Hub:        hub,
	}, logger)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
