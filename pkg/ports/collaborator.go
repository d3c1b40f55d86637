package ports

import (
	"context"

	"github.com/ledscape/intake/pkg/domain"
)

// EventRecord is the business record handed to external collaborators when a
// quote is finalized.
type EventRecord struct {
	UserID  string             `json:"user_id"`
	Service domain.ServiceType `json:"service"`
	Draft   domain.Draft       `json:"draft"`
	Quote   domain.Quote       `json:"quote"`
}

// Recorder persists a finalized intake (project tracker, spreadsheet, ...).
// Calls are best-effort, at-least-once from the core's perspective; the core
// does not retry.
type Recorder interface {
	// Record stores the event and returns the created record's ID.
	Record(ctx context.Context, record *EventRecord) (string, error)
}

// Notifier alerts a human owner that a new request arrived.
type Notifier interface {
	Notify(ctx context.Context, service domain.ServiceType, summary string) error
}
