// Package llm implements the text generation backends for the relay. Two
// generator variants exist: the Gemini SDK client and an OpenAI-compatible
// REST client. The variant is selected once at startup from configuration;
// when neither backend is configured, NewGenerator returns nil and the relay
// serves canned answers only.
package llm

import (
	"context"
	"log/slog"

	"github.com/edgard/nichirin/internal/config"
)

// Generator produces a free-form reply for a single user message.
type Generator interface {
	Generate(ctx context.Context, userMessage string) (string, error)
}

// NewGenerator selects and constructs the generation backend: the Gemini SDK
// client when a Gemini credential is configured, otherwise the
// OpenAI-compatible REST client when that endpoint has a key. With neither
// configured it returns (nil, nil); callers treat a nil Generator as the
// unconfigured-backend state.
func NewGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (Generator, error) {
	switch {
	case cfg.Gemini.APIKey != "":
		return newGeminiGenerator(ctx, cfg.Gemini, log)
	case cfg.OpenAI.APIKey != "":
		return newRESTGenerator(cfg.OpenAI, log), nil
	default:
		log.Warn("No generation backend configured; only canned answers will be served")
		return nil, nil
	}
}
