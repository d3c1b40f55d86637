package ports

import (
	"context"

	"github.com/ledscape/intake/pkg/domain"
)

// SessionStore defines the interface for persisting conversation sessions.
//
// Implementations must never hand out shared mutable state: a loaded session
// is always a copy, and saving a session must not alias the caller's value.
type SessionStore interface {
	// Save persists the session for a user ID.
	Save(ctx context.Context, userID string, session *domain.Session) error

	// Load retrieves the session for a user ID.
	// Returns domain.ErrSessionNotFound if none exists.
	Load(ctx context.Context, userID string) (*domain.Session, error)

	// Delete removes the session for a user ID. Deleting a missing
	// session is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns the user IDs with an active session.
	List(ctx context.Context) ([]string, error)
}
