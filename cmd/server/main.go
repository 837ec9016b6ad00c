package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/jobs"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/scheduler"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("flashdeck server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	historyRepo := sqlite.NewReviewHistoryRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDefaultDecks {
		if _, err := services.NewSeedService(deckRepo, cardRepo).SeedDefaults(ctx); err != nil {
			log.Error("failed to seed default decks: %v", err)
			os.Exit(1)
		}
	}

	historyPool := worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)
	historyPool.Start(context.Background())

	srv := &api.Server{
		DB:           database,
		DeckService:  services.NewDeckService(deckRepo, cardRepo),
		StudyService: services.NewStudyService(scheduler.New(), deckRepo, cardRepo, historyRepo, jobs.NewWorkerQueue(historyPool, historyRepo)),
		StatsService: services.NewStatsService(statsRepo, deckRepo),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-serverErr:
		log.Error("HTTP server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Workers drain queued history writes before the database closes.
	log.Debug("stopping history pool")
	historyPool.Stop()

	log.Info("flashdeck server stopped")
}
