// Package http exposes the conversation router as a chat webhook.
//
// The transport contract is deliberately small: one POST per inbound user
// message, one JSON reply per response. The handler always answers 200 with
// some reply text for routable requests, because a chat transport renders
// whatever it gets; only malformed requests are rejected.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ledscape/intake/internal/logging"
	"github.com/ledscape/intake/pkg/conversation"
	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/session"
)

// MessageRequest is the inbound webhook payload.
type MessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

// MessageResponse mirrors domain.Response on the wire.
type MessageResponse struct {
	Text         string              `json:"text"`
	QuickReplies []domain.QuickReply `json:"quick_replies,omitempty"`
}

// Server wires the router and session manager into HTTP handlers.
type Server struct {
	router   *conversation.Router
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler builds the HTTP handler for the webhook surface.
// extra handlers (e.g. a Prometheus /metrics endpoint) can be mounted on
// the returned mux by the caller before serving.
func NewHandler(router *conversation.Router, sessions *session.Manager, opts ...Option) *chi.Mux {
	srv := &Server{
		router:   router,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Post("/v1/messages", srv.handleMessage)
	r.Get("/v1/sessions", srv.handleListSessions)
	r.Delete("/v1/sessions/{userID}", srv.handleClearSession)
	r.Get("/health", srv.handleHealth)
	return r
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("message: invalid request body", "err", err)
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	resp, err := s.router.Handle(r.Context(), body.UserID, body.Text)
	if err != nil {
		// The router already produced an apology reply; the chat transport
		// should surface that rather than a bare transport error.
		s.logger.Error("message handling failed", "user_id", body.UserID, "err", err)
	}

	writeJSON(w, s.logger, MessageResponse{
		Text:         resp.Text,
		QuickReplies: resp.QuickReplies,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	users, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		s.logger.Error("list sessions failed", "err", err)
		return
	}

	writeJSON(w, s.logger, map[string]any{"user_ids": users})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.sessions.Clear(r.Context(), userID); err != nil {
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		s.logger.Error("clear session failed", "user_id", userID, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

// shutdownGrace is how long outstanding requests get to finish.
const shutdownGrace = 5 * time.Second

// ListenAndServe runs the handler until ctx is canceled, then shuts down
// gracefully. Used by the serve command.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		return nil
	}
}
