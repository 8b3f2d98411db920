package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edgard/nichirin/internal/canned"
	"github.com/edgard/nichirin/internal/chat"
	"github.com/edgard/nichirin/internal/server"
)

type generatorFunc func(ctx context.Context, userMessage string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, userMessage string) (string, error) {
	return f(ctx, userMessage)
}

const lifeStoryAnswer = "the fixed life story reply"

func newTestServer(t *testing.T, gen generatorFunc) *httptest.Server {
	t.Helper()

	table := canned.Table{
		{Key: "life story", Answer: lifeStoryAnswer},
		{Key: "superpower", Answer: "the superpower reply"},
	}

	log := slog.New(slog.DiscardHandler)

	// A nil generatorFunc must become a nil interface, not a typed nil.
	var service *chat.Service
	if gen == nil {
		service = chat.NewService(log, table, nil)
	} else {
		service = chat.NewService(log, table, gen)
	}

	srv := httptest.NewServer(server.New(log, 0, service).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (int, map[string]string) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/chat failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestChatEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("canned answer without backend call", func(t *testing.T) {
		t.Parallel()

		called := false
		srv := newTestServer(t, func(ctx context.Context, msg string) (string, error) {
			called = true
			return "generated", nil
		})

		status, body := postChat(t, srv, `{"message": "tell me about your life story"}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["reply"] != lifeStoryAnswer {
			t.Errorf("reply = %q, want the canned reply", body["reply"])
		}
		if called {
			t.Error("backend was invoked despite a canned match")
		}
	})

	t.Run("missing message field", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{}`)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "No 'message' or 'messages' provided" {
			t.Errorf("error = %q, want missing-field message", body["error"])
		}
	})

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{"message": ""}`)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "Empty message provided" {
			t.Errorf("error = %q, want empty-message message", body["error"])
		}
	})

	t.Run("non-JSON body", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `this is not json`)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "No JSON body provided" {
			t.Errorf("error = %q, want missing-body message", body["error"])
		}
	})

	t.Run("unconfigured backend degrades gracefully", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{"message": "what's the weather in Tokyo"}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["reply"] != chat.UnconfiguredReply {
			t.Errorf("reply = %q, want the unconfigured-backend reply", body["reply"])
		}
	})

	t.Run("generated reply", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(ctx context.Context, msg string) (string, error) {
			if msg != "what's the weather in Tokyo" {
				t.Errorf("backend received %q", msg)
			}
			return "probably raining", nil
		})

		status, body := postChat(t, srv, `{"message": "what's the weather in Tokyo"}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["reply"] != "probably raining" {
			t.Errorf("reply = %q, want the generated reply", body["reply"])
		}
	})

	t.Run("backend failure surfaces as server error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(ctx context.Context, msg string) (string, error) {
			return "", errors.New("upstream exploded")
		})

		status, body := postChat(t, srv, `{"message": "what's the weather in Tokyo"}`)
		if status != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", status)
		}
		if !strings.HasPrefix(body["error"], "Gemini error: ") {
			t.Errorf("error = %q, want a Gemini error prefix", body["error"])
		}
		if !strings.Contains(body["error"], "upstream exploded") {
			t.Errorf("error = %q, want embedded upstream error text", body["error"])
		}
	})

	t.Run("messages list uses the last entry", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{"messages": ["ignored", {"content": "my superpower?"}]}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["reply"] != "the superpower reply" {
			t.Errorf("reply = %q, want the superpower reply", body["reply"])
		}
	})

	t.Run("messages as plain string", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{"messages": "tell me your life story"}`)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if body["reply"] != lifeStoryAnswer {
			t.Errorf("reply = %q, want the canned reply", body["reply"])
		}
	})

	t.Run("empty messages list", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		status, body := postChat(t, srv, `{"messages": []}`)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] != "Empty message provided" {
			t.Errorf("error = %q, want empty-message message", body["error"])
		}
	})

	t.Run("GET is rejected", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, nil)
		resp, err := http.Get(srv.URL + "/api/chat")
		if err != nil {
			t.Fatalf("GET /api/chat failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", resp.StatusCode)
		}
	})
}

func TestIndexPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}
