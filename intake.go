// Package intake is the high-level entry point for the LED rental intake
// assistant. It wires the conversation router, session manager and pricing
// configuration behind a small API so embedders do not have to assemble the
// pieces themselves.
package intake

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledscape/intake/pkg/adapters/memory"
	"github.com/ledscape/intake/pkg/config"
	"github.com/ledscape/intake/pkg/conversation"
	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
	"github.com/ledscape/intake/pkg/session"
)

// Version identifies the intake release. Overridden at build time via
// -ldflags "-X github.com/ledscape/intake.Version=...".
var Version = "dev"

// Assistant bundles a session manager and a conversation router into a single
// message-in, response-out surface.
type Assistant struct {
	sessions *session.Manager
	router   *conversation.Router

	store    ports.SessionStore
	cfg      *config.Config
	recorder ports.Recorder
	notifier ports.Notifier
	locker   ports.DistributedLocker
	registry prometheus.Registerer
	logger   *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithStore injects a session store. Defaults to the in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(a *Assistant) { a.store = store }
}

// WithConfig overrides the default pricing and vocabulary configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *Assistant) { a.cfg = cfg }
}

// WithRecorder registers a recorder for completed intakes.
func WithRecorder(rec ports.Recorder) Option {
	return func(a *Assistant) { a.recorder = rec }
}

// WithNotifier registers a notifier for completed intakes.
func WithNotifier(n ports.Notifier) Option {
	return func(a *Assistant) { a.notifier = n }
}

// WithDistributedLocker enables cross-process per-user locking, typically
// backed by Redis when several instances share one store.
func WithDistributedLocker(locker ports.DistributedLocker) Option {
	return func(a *Assistant) { a.locker = locker }
}

// WithMetrics registers conversation metrics on the given registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(a *Assistant) { a.registry = reg }
}

// WithLogger sets a structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) { a.logger = logger }
}

// New assembles an Assistant. With no options it runs fully in memory with a
// discarded logger, which is the configuration the tests and the local chat
// command use.
func New(opts ...Option) (*Assistant, error) {
	a := &Assistant{}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sessionOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	a.sessions = session.NewManager(a.store, sessionOpts...)

	routerOpts := []conversation.Option{conversation.WithLogger(a.logger)}
	if a.recorder != nil {
		routerOpts = append(routerOpts, conversation.WithRecorder(a.recorder))
	}
	if a.notifier != nil {
		routerOpts = append(routerOpts, conversation.WithNotifier(a.notifier))
	}
	if a.registry != nil {
		routerOpts = append(routerOpts, conversation.WithMetrics(a.registry))
	}
	a.router = conversation.New(a.sessions, a.cfg, routerOpts...)

	return a, nil
}

// Message feeds one user utterance through the conversation and returns the
// assistant's reply. Concurrent calls for the same user are serialized.
func (a *Assistant) Message(ctx context.Context, userID, text string) (domain.Response, error) {
	return a.router.Handle(ctx, userID, text)
}

// Sessions exposes the underlying session manager for transports that need
// listing or clearing (the HTTP admin endpoints, the chat REPL's /reset).
func (a *Assistant) Sessions() *session.Manager {
	return a.sessions
}

// Router exposes the conversation router for transports that mount it
// directly.
func (a *Assistant) Router() *conversation.Router {
	return a.router
}

// Config returns the active pricing and vocabulary configuration.
func (a *Assistant) Config() *config.Config {
	return a.cfg
}
