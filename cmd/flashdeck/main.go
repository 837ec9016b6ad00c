package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/vytor/flashdeck/internal/cli"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/scheduler"
	"github.com/vytor/flashdeck/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		// Keep the terminal quiet unless asked otherwise.
		cfg.LogLevel = "WARN"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return 1
	}
	logger.SetDefault(logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	))

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database error:", err)
		return 1
	}
	defer database.Close()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	app := &cli.App{
		Decks: services.NewDeckService(deckRepo, cardRepo),
		Study: services.NewStudyService(scheduler.New(), deckRepo, cardRepo, sqlite.NewReviewHistoryRepository(database.DB), nil),
		Stats: services.NewStatsService(sqlite.NewStatsRepository(database.DB), deckRepo),
		Seed:  services.NewSeedService(deckRepo, cardRepo),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
