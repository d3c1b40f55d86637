package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledscape/intake/internal/logging"
	"github.com/ledscape/intake/pkg/config"
	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
	"github.com/ledscape/intake/pkg/session"
)

// handlerFunc processes one message for one step. It may mutate the session;
// whatever it returns is sent back to the user.
type handlerFunc func(ctx context.Context, s *domain.Session, msg string) domain.Response

// Router drives the conversation: global intents first, then step dispatch.
type Router struct {
	sessions *session.Manager
	cfg      *config.Config

	recorder ports.Recorder
	notifier ports.Notifier

	logger  *slog.Logger
	metrics *metrics

	handlers map[domain.Step]handlerFunc
}

// Option configures the Router.
type Option func(*Router)

// WithRecorder wires the external persistence collaborator.
func WithRecorder(rec ports.Recorder) Option {
	return func(r *Router) {
		r.recorder = rec
	}
}

// WithNotifier wires the manager-notification collaborator.
func WithNotifier(n ports.Notifier) Option {
	return func(r *Router) {
		r.notifier = n
	}
}

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMetrics registers the router's Prometheus instruments on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Router) {
		r.metrics = newMetrics(reg)
	}
}

// New creates a Router over the given session manager and configuration.
func New(sessions *session.Manager, cfg *config.Config, opts ...Option) *Router {
	r := &Router{
		sessions: sessions,
		cfg:      cfg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// start and select_service have dedicated entry handlers in dispatch;
	// everything else goes through this table. Unknown steps fall back.
	r.handlers = map[domain.Step]handlerFunc{
		domain.StepLEDCount:     r.handleLEDCount,
		domain.StepLEDSize:      r.handleLEDSize,
		domain.StepStageHeight:  r.handleStageHeight,
		domain.StepOperatorNeed: r.handleOperatorNeed,
		domain.StepOperatorDays: r.handleOperatorDays,
		domain.StepSchedule:     r.handleSchedule,
		domain.StepVenue:        r.handleVenue,
		domain.StepCompany:      r.handleCompany,
		domain.StepContactName:  r.handleContactName,
		domain.StepContactTitle: r.handleContactTitle,
		domain.StepContactPhone: r.handleContactPhone,
		domain.StepConfirm:      r.handleConfirm,
		domain.StepDone:         r.handleDone,
	}
	return r
}

// Handle is the sole inbound entry point: one user message in, one reply out.
// It serializes per user, loads or creates the session, dispatches, and
// persists the (possibly mutated) session.
func (r *Router) Handle(ctx context.Context, userID, text string) (domain.Response, error) {
	clean, err := SanitizeInput(text)
	if err != nil {
		// User-correctable, not an internal failure.
		r.logger.Warn("message rejected by sanitizer", "user_id", userID, "err", err)
		return domain.Reply("Sorry, I couldn't read that message. Could you shorten it and try again?"), nil
	}

	var resp domain.Response
	err = r.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
		store := r.sessions.Store()

		s, err := store.Load(ctx, userID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			s = domain.NewSession(userID)
		} else if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		r.metrics.message(string(s.Step))
		resp = r.dispatch(ctx, s, clean)

		if err := store.Save(ctx, userID, s); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("message handling failed", "user_id", userID, "err", err)
		return apologyPrompt(), err
	}

	return resp, nil
}

// dispatch classifies the message and routes it. Global intents are tested
// against the fixed vocabularies first; only then does the current step's
// handler see the text.
func (r *Router) dispatch(ctx context.Context, s *domain.Session, text string) domain.Response {
	msg := strings.TrimSpace(text)
	vocab := r.cfg.Vocabulary

	switch {
	case matchesAny(msg, vocab.ModifyKeywords):
		// Confirmation only; nothing is mutated until the user picks.
		return modifyConfirmPrompt()

	case matchesAny(msg, vocab.ResetKeywords):
		s.Reset()
		r.metrics.reset()
		r.logger.Info("session reset", "user_id", s.UserID)
		return welcomePrompt()

	case matchesAny(msg, vocab.BackKeywords):
		if !s.Rollback() {
			resp := promptFor(s)
			resp.Text = "There's nothing to go back to here.\n\n" + resp.Text
			return resp
		}
		return promptFor(s)

	case strings.EqualFold(msg, "continue"):
		// Offered by the modify-confirmation prompt.
		return promptFor(s)
	}

	switch s.Step {
	case domain.StepStart:
		return r.handleStart(ctx, s, msg)
	case domain.StepSelectService:
		return r.handleSelectService(ctx, s, msg)
	}

	h, ok := r.handlers[s.Step]
	if !ok {
		r.logger.Warn("no handler for step", "user_id", s.UserID, "step", s.Step)
		return fallbackPrompt()
	}
	return h(ctx, s, msg)
}
