package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/edgard/nichirin/internal/config"
)

// restGenerator generates replies through an OpenAI-compatible chat
// completions endpoint.
type restGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func newRESTGenerator(cfg config.OpenAIConfig, log *slog.Logger) Generator {
	logger := log.With("component", "rest_client")
	logger.Info("OpenAI-compatible client initialized", "base_url", cfg.BaseURL, "model", cfg.Model)
	return &restGenerator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		log:     logger,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (g *restGenerator) Generate(ctx context.Context, userMessage string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.ErrorContext(ctx, "Chat completion request failed", "error", err)
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.log.ErrorContext(ctx, "Chat completion returned non-OK status", "status", resp.StatusCode)
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err == nil && len(completion.Choices) > 0 {
		if text := strings.TrimSpace(completion.Choices[0].Message.Content); text != "" {
			return text, nil
		}
	}

	// Unexpected reply shape; shape-probe the decoded body instead of
	// failing outright.
	g.log.WarnContext(ctx, "Chat completion response missing choices, normalizing raw response")
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return "", fmt.Errorf("failed to decode chat completion response: %w", err)
	}
	return Normalize(value), nil
}
