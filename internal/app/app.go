// Package app orchestrates the lifecycle of the relay's components: the
// HTTP server, the optional Telegram frontend, and the usage summary
// scheduler.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/nichirin/internal/scheduler"
	"github.com/edgard/nichirin/internal/server"
)

// App holds the running components. The Telegram bot may be nil when no
// token is configured.
type App struct {
	logger    *slog.Logger
	server    *server.Server
	tgBot     *tgbot.Bot
	scheduler *scheduler.Scheduler
}

// New creates the application orchestrator.
func New(logger *slog.Logger, srv *server.Server, tg *tgbot.Bot, sched *scheduler.Scheduler) *App {
	return &App{
		logger:    logger.With("component", "app"),
		server:    srv,
		tgBot:     tg,
		scheduler: sched,
	}
}

// Run starts all components and blocks until the context is cancelled or a
// component fails. Shutdown is graceful: the HTTP server drains in-flight
// requests and the scheduler waits for a running job.
func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Run(gCtx)
	})

	if a.tgBot != nil {
		g.Go(func() error {
			a.logger.Info("Starting Telegram listener...")
			a.tgBot.Start(gCtx)
			a.logger.Info("Telegram listener stopped.")

			if gCtx.Err() == nil {
				return fmt.Errorf("telegram listener stopped unexpectedly")
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := a.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}
