// Package logsink provides log-only implementations of the collaborator
// ports. They stand in for the real project-tracker and notification
// integrations in local runs and tests, and document the boundary contract.
package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
)

// Recorder logs finalized intake records instead of persisting them.
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder creates a log-only Recorder.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Record logs the event and returns a synthetic record ID.
func (r *Recorder) Record(ctx context.Context, record *ports.EventRecord) (string, error) {
	id := fmt.Sprintf("evt-%d", time.Now().UnixNano())
	r.logger.Info("intake recorded",
		"record_id", id,
		"user_id", record.UserID,
		"service", record.Service,
		"company", record.Draft.Company,
		"walls", len(record.Draft.Specs),
		"total_won", record.Quote.Total,
	)
	return id, nil
}

// Notifier logs manager notifications instead of delivering them.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier creates a log-only Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify logs the summary.
func (n *Notifier) Notify(ctx context.Context, service domain.ServiceType, summary string) error {
	n.logger.Info("manager notification", "service", service, "summary", summary)
	return nil
}
