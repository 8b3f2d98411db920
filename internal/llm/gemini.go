package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/edgard/nichirin/internal/config"
)

// geminiGenerator generates replies through the Gemini API using the
// official SDK.
type geminiGenerator struct {
	client        *genai.Client
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
}

func newGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Generator, error) {
	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized successfully", "model", cfg.Model)
	return &geminiGenerator{
		client: gi,
		log:    logger,
		contentConfig: &genai.GenerateContentConfig{
			Temperature: &cfg.Temperature,
		},
		modelName: cfg.Model,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, userMessage string) (string, error) {
	g.log.DebugContext(ctx, "Generating reply", "model", g.modelName)

	contents := genai.Text(BuildPrompt(userMessage))
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, g.contentConfig)
	if err != nil {
		g.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text, nil
	}

	// The SDK found no plain text; fall back to shape-probing the raw
	// response so an unusual reply still yields something usable.
	g.log.WarnContext(ctx, "Gemini response had no direct text, normalizing raw response")
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", nil
	}
	return Normalize(value), nil
}
