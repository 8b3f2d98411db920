// Package scheduler runs the periodic usage summary job using gocron.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/nichirin/internal/chat"
)

// Scheduler periodically logs a summary of the relay counters.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	interval  time.Duration
	svc       *chat.Service
	mu        sync.Mutex
	running   bool
}

// New creates a scheduler that logs the service counters every interval.
func New(logger *slog.Logger, interval time.Duration, svc *chat.Service) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
		interval:  interval,
		svc:       svc,
	}, nil
}

// Start registers the usage summary job and starts the scheduler ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			stats := s.svc.Stats()
			s.logger.Info("Usage summary",
				"requests", stats.Requests,
				"canned_hits", stats.CannedHits,
				"generated", stats.Generated,
				"failures", stats.Failures,
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule usage summary job: %w", err)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "interval", s.interval)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}

	s.running = false
	s.logger.Info("Scheduler stopped.")
	return nil
}
