// Package main contains the entrypoint for the Nichirin conversational relay.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgard/nichirin/internal/app"
	"github.com/edgard/nichirin/internal/canned"
	"github.com/edgard/nichirin/internal/chat"
	"github.com/edgard/nichirin/internal/config"
	"github.com/edgard/nichirin/internal/database"
	"github.com/edgard/nichirin/internal/llm"
	"github.com/edgard/nichirin/internal/logger"
	"github.com/edgard/nichirin/internal/scheduler"
	"github.com/edgard/nichirin/internal/server"
	"github.com/edgard/nichirin/internal/telegram"

	tgbot "github.com/go-telegram/bot"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, logger, database, generator,
// services), starts the application, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	rows, err := store.ListCannedAnswers(ctx)
	if err != nil {
		log.Error("Failed to load canned answers", "error", err)
		return 1
	}
	table := make(canned.Table, 0, len(rows))
	for _, row := range rows {
		table = append(table, canned.Entry{Key: row.Topic, Answer: row.Answer})
	}
	log.Info("Canned answer table loaded", "entries", len(table))

	gen, err := llm.NewGenerator(ctx, cfg, log)
	if err != nil {
		// The relay keeps serving canned answers without a backend.
		log.Warn("Failed to initialize generation backend, continuing without it", "error", err)
		gen = nil
	}

	svc := chat.NewService(log, table, gen)
	srv := server.New(log, cfg.Server.Port, svc)

	var tg *tgbot.Bot
	if cfg.Telegram.Token != "" {
		tg, err = telegram.NewBot(cfg.Telegram.Token, log, svc)
		if err != nil {
			log.Error("Failed to create Telegram bot", "error", err)
			return 1
		}
	}

	sched, err := scheduler.New(log, cfg.Stats.Interval, svc)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	log.Info("Starting Nichirin relay...")
	if err := app.New(log, srv, tg, sched).Run(ctx); err != nil {
		return 1
	}
	return 0
}
