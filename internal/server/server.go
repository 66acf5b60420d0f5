// ABOUTME: HTTP server wiring for the marketplace chat API
// ABOUTME: Builds the mux, applies middleware, and handles graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/XxELIngexX/Econexion-back/internal/auth"
	"github.com/XxELIngexX/Econexion-back/internal/chat"
	"github.com/XxELIngexX/Econexion-back/internal/config"
	"github.com/XxELIngexX/Econexion-back/internal/store"
)

// shutdownTimeout bounds how long graceful shutdown waits for in-flight requests
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front for the chat engine
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	chat   *chat.Service
	users  store.UserStore
	tokens *auth.JWTVerifier

	httpServer *http.Server
}

// New creates a new Server wired to the given chat engine and stores
func New(cfg *config.Config, chatSvc *chat.Service, users store.UserStore, tokens *auth.JWTVerifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger.With("component", "server"),
		chat:   chatSvc,
		users:  users,
		tokens: tokens,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

// Handler builds the full route table with middleware applied.
// Exposed so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check (unauthenticated)
	mux.HandleFunc("/health", s.handleHealth)

	// Account endpoints (unauthenticated)
	mux.HandleFunc("/api/auth/register", s.handleRegister)
	mux.HandleFunc("/api/auth/login", s.handleLogin)

	// Chat endpoints require a resolved identity
	authMiddleware := auth.HTTPAuthMiddleware(s.tokens)
	mux.Handle("/api/chat/conversations", authMiddleware(http.HandlerFunc(s.handleConversations)))
	mux.Handle("/api/chat/conversations/", authMiddleware(http.HandlerFunc(s.handleConversationRoutes)))

	return s.requestLogging(mux)
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. Shutdown drains in-flight requests with a fresh
// timeout context.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		serverErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown failed", "error", err)
		if serverErr == nil {
			serverErr = fmt.Errorf("shutting down: %w", err)
		}
	}

	return serverErr
}

// handleHealth handles GET /health requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
