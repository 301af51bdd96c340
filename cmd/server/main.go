package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/cognitrain/internal/api"
	"github.com/vytor/cognitrain/internal/config"
	"github.com/vytor/cognitrain/internal/db"
	"github.com/vytor/cognitrain/internal/difficulty"
	"github.com/vytor/cognitrain/internal/encouragement"
	"github.com/vytor/cognitrain/internal/jobs"
	"github.com/vytor/cognitrain/internal/logger"
	"github.com/vytor/cognitrain/internal/repository/sqlite"
	"github.com/vytor/cognitrain/internal/scoring"
	"github.com/vytor/cognitrain/internal/services"
	"github.com/vytor/cognitrain/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("CogniTrain Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("recent_window=%d", cfg.RecentWindow)
	log.Debug("tuning_path=%s", cfg.TuningPath)

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Error("failed to load tuning: %v", err)
		os.Exit(1)
	}
	scoringCfg, difficultyCfg, err := tuning.Apply()
	if err != nil {
		log.Error("invalid tuning: %v", err)
		os.Exit(1)
	}
	log.Debug("levels=%d..%d, increase_threshold=%.1f, decrease_threshold=%.1f",
		difficultyCfg.MinLevel, difficultyCfg.MaxLevel, difficultyCfg.IncreaseThreshold, difficultyCfg.DecreaseThreshold)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	profileRepo := sqlite.NewProfileRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	summaryRepo := sqlite.NewSummaryRepository(database.DB)

	calc := scoring.NewCalculator(scoringCfg)
	advisor := difficulty.NewAdvisor(difficultyCfg)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)

	profileService := services.NewProfileService(profileRepo)
	progressService := services.NewProgressService(profileRepo, sessionRepo, summaryRepo, advisor, encouragement.Static{}, cfg.RecentWindow)
	jobQueue := jobs.NewWorkerQueue(pool, progressService)
	sessionService := services.NewSessionService(profileRepo, sessionRepo, calc, jobQueue)

	srv := &api.Server{
		DB:              database,
		Calculator:      calc,
		Advisor:         advisor,
		ProfileService:  profileService,
		SessionService:  sessionService,
		ProgressService: progressService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending summary refreshes before the database closes.
	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("CogniTrain Server Stopped")
	log.Info("===========================================")
}
