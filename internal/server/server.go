// Package server implements the HTTP surface of the relay: the chat API
// endpoint, a small embedded chat page, and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/edgard/nichirin/internal/chat"
	"github.com/edgard/nichirin/internal/logger"
)

// Server serves the chat API on a single listener.
type Server struct {
	log  *slog.Logger
	addr string
	svc  *chat.Service
}

// New creates a Server answering requests through the given relay service.
func New(log *slog.Logger, port int, svc *chat.Service) *Server {
	return &Server{
		log:  log.With("component", "http_server"),
		addr: fmt.Sprintf(":%d", port),
		svc:  svc,
	}
}

// Handler returns the full request handler including logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/chat", s.handleChat)

	return logger.Middleware(s.log)(mux)
}

// Run starts the HTTP listener and blocks until the context is cancelled or
// the listener fails. Shutdown waits briefly for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	s.log.Info("HTTP server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	s.log.Info("HTTP server stopped.")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleChat implements POST /api/chat: parse the input, try the canned
// table, otherwise forward to the generation backend.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || data == nil {
		writeError(w, http.StatusBadRequest, "No JSON body provided")
		return
	}

	message, err := extractMessage(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.InfoContext(r.Context(), "Received message", "preview", preview(message, 80))

	reply, err := s.svc.Reply(r.Context(), message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Gemini error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func preview(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
