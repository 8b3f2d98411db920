// Package chat implements the relay service: each message is first checked
// against the canned answer table and only forwarded to the generation
// backend when nothing matches.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/edgard/nichirin/internal/canned"
	"github.com/edgard/nichirin/internal/llm"
)

// UnconfiguredReply is returned when no generation backend is configured.
// This is a normal reply, not an error: canned answers keep working.
const UnconfiguredReply = "Gemini backend is not configured on this server. " +
	"I can still answer a set of predefined questions. " +
	"For other queries, please configure GEMINI_API_KEY on the server."

// EmptyReply substitutes for a generation result that normalized to nothing.
const EmptyReply = "Received an empty response from the language model. " +
	"Please check the model configuration or the API key."

// Service answers user messages. It holds the read-only canned answer table
// and the optionally configured generator; neither changes after startup.
type Service struct {
	log   *slog.Logger
	table canned.Table
	gen   llm.Generator

	requests  atomic.Int64
	cannedHit atomic.Int64
	generated atomic.Int64
	failures  atomic.Int64
}

// NewService creates the relay service. gen may be nil when no generation
// backend was configured at startup.
func NewService(log *slog.Logger, table canned.Table, gen llm.Generator) *Service {
	return &Service{
		log:   log.With("component", "chat_service"),
		table: table,
		gen:   gen,
	}
}

// Reply produces the response for a single user message. A canned match
// short-circuits without touching the backend; an unconfigured backend
// yields a fixed informational reply; an empty generation result yields a
// fixed placeholder. Only a failed backend call returns an error.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	s.requests.Add(1)

	if answer, ok := s.table.Match(message); ok {
		s.cannedHit.Add(1)
		s.log.InfoContext(ctx, "Returning predefined reply")
		return answer, nil
	}

	if s.gen == nil {
		s.log.InfoContext(ctx, "Generation backend not configured; returning fallback reply")
		return UnconfiguredReply, nil
	}

	text, err := s.gen.Generate(ctx, message)
	if err != nil {
		s.failures.Add(1)
		s.log.ErrorContext(ctx, "Generation failed", "error", err)
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = EmptyReply
	}
	s.generated.Add(1)

	s.log.InfoContext(ctx, "Generated reply", "preview", truncate(text, 200))
	return text, nil
}

// Stats is a snapshot of the relay counters.
type Stats struct {
	Requests   int64
	CannedHits int64
	Generated  int64
	Failures   int64
}

// Stats returns the current counter snapshot.
func (s *Service) Stats() Stats {
	return Stats{
		Requests:   s.requests.Load(),
		CannedHits: s.cannedHit.Load(),
		Generated:  s.generated.Load(),
		Failures:   s.failures.Load(),
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
