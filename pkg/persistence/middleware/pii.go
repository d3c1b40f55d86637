package middleware

import (
	"context"
	"strings"

	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
)

const masked = "***"

type piiMiddleware struct {
	next ports.SessionStore
}

// NewPIIMiddleware creates a middleware that masks customer contact details
// when a finished session is written. Active sessions pass through intact
// because the flow still needs them to render summaries; once the intake is
// recorded only the masked copy remains at rest.
func NewPIIMiddleware() Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, userID string, session *domain.Session) error {
	if session.Step != domain.StepDone {
		return m.next.Save(ctx, userID, session)
	}

	cloned := session.Clone()
	cloned.Draft.ContactName = masked
	cloned.Draft.ContactTitle = masked
	cloned.Draft.ContactPhone = maskPhone(cloned.Draft.ContactPhone)
	return m.next.Save(ctx, userID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, userID string) (*domain.Session, error) {
	return m.next.Load(ctx, userID)
}

func (m *piiMiddleware) Delete(ctx context.Context, userID string) error {
	return m.next.Delete(ctx, userID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// maskPhone keeps the last four digits so support can still correlate a
// record with a caller.
func maskPhone(phone string) string {
	digits := strings.ReplaceAll(phone, "-", "")
	if len(digits) <= 4 {
		return masked
	}
	return masked + "-" + digits[len(digits)-4:]
}
