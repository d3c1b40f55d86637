package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
	"github.com/ledscape/intake/pkg/quote"
	"github.com/ledscape/intake/pkg/validate"
)

// maxLEDPoints bounds the per-LED loop; more walls than this is a manual
// sales conversation, not a chat intake.
const maxLEDPoints = 10

// handleStart greets the user. If the first message already names a service
// (the welcome quick replies re-surface after a reset), it is honored
// directly instead of asking twice.
func (r *Router) handleStart(ctx context.Context, s *domain.Session, msg string) domain.Response {
	s.Step = domain.StepSelectService
	if _, ok := r.matchService(msg); ok {
		return r.handleSelectService(ctx, s, msg)
	}
	return welcomePrompt()
}

func (r *Router) handleSelectService(ctx context.Context, s *domain.Session, msg string) domain.Response {
	svc, ok := r.matchService(msg)
	if !ok {
		resp := welcomePrompt()
		resp.Text = "Please pick one of the services below.\n\n" + resp.Text
		return resp
	}

	s.Checkpoint()
	s.Service = domain.ServiceType(svc)
	r.logger.Info("service selected", "user_id", s.UserID, "service", svc)

	if s.Service == domain.ServiceMembership {
		// Membership pricing is bespoke; skip the spec loop and go straight
		// to contact collection.
		s.Step = domain.StepCompany
		return companyPrompt(s.Service)
	}

	s.Step = domain.StepLEDCount
	return ledCountPrompt(s.Service)
}

func (r *Router) handleLEDCount(ctx context.Context, s *domain.Session, msg string) domain.Response {
	n, err := strconv.Atoi(strings.TrimSpace(msg))
	if err != nil || n < 1 || n > maxLEDPoints {
		return retry(
			fmt.Errorf("please enter a number of LED walls between 1 and %d", maxLEDPoints),
			ledCountPrompt(s.Service),
		)
	}

	s.Checkpoint()
	s.LEDCount = n
	s.CurrentLED = 1
	s.Draft.Specs = []domain.LEDSpec{}
	s.Step = domain.StepLEDSize
	return ledSizePrompt(s.CurrentLED, s.LEDCount)
}

func (r *Router) handleLEDSize(ctx context.Context, s *domain.Session, msg string) domain.Response {
	w, h, err := validate.LEDSize(msg)
	if err != nil {
		return retry(err, ledSizePrompt(s.CurrentLED, s.LEDCount))
	}

	spec := s.CurrentSpec()
	spec.WidthMM = w
	spec.HeightMM = h
	s.Step = domain.StepStageHeight
	return stageHeightPrompt(s.CurrentLED)
}

func (r *Router) handleStageHeight(ctx context.Context, s *domain.Session, msg string) domain.Response {
	h, err := validate.StageHeight(msg)
	if err != nil {
		return retry(err, stageHeightPrompt(s.CurrentLED))
	}

	s.CurrentSpec().StageHeight = h
	s.Step = domain.StepOperatorNeed
	return operatorNeedPrompt(s.CurrentLED)
}

func (r *Router) handleOperatorNeed(ctx context.Context, s *domain.Session, msg string) domain.Response {
	vocab := r.cfg.Vocabulary
	switch {
	case matchesAny(msg, vocab.ConfirmKeywords):
		s.CurrentSpec().NeedOperator = true
		s.Step = domain.StepOperatorDays
		return operatorDaysPrompt(s.CurrentLED)
	case matchesAny(msg, vocab.DeclineKeywords):
		spec := s.CurrentSpec()
		spec.NeedOperator = false
		spec.OperatorDays = 0
		return r.advanceLED(s)
	}
	return retry(
		fmt.Errorf("please answer yes or no"),
		operatorNeedPrompt(s.CurrentLED),
	)
}

func (r *Router) handleOperatorDays(ctx context.Context, s *domain.Session, msg string) domain.Response {
	n, err := strconv.Atoi(strings.TrimSpace(msg))
	if err != nil || n < 1 {
		return retry(
			fmt.Errorf("please enter a whole number of days, at least 1"),
			operatorDaysPrompt(s.CurrentLED),
		)
	}

	s.CurrentSpec().OperatorDays = n
	return r.advanceLED(s)
}

// advanceLED closes out the current LED point: either loops to the next
// one or leaves the collection loop for the schedule question. The loop
// position is computed, never hardcoded.
func (r *Router) advanceLED(s *domain.Session) domain.Response {
	if s.CurrentLED < s.LEDCount {
		s.CurrentLED++
		s.Step = domain.StepLEDSize
		return ledSizePrompt(s.CurrentLED, s.LEDCount)
	}
	s.Step = domain.StepSchedule
	return schedulePrompt()
}

func (r *Router) handleSchedule(ctx context.Context, s *domain.Session, msg string) domain.Response {
	p, err := validate.Period(msg)
	if err != nil {
		return retry(err, schedulePrompt())
	}

	s.Checkpoint()
	s.Draft.Period = p
	s.Step = domain.StepVenue
	return venuePrompt()
}

func (r *Router) handleVenue(ctx context.Context, s *domain.Session, msg string) domain.Response {
	if strings.TrimSpace(msg) == "" {
		return retry(fmt.Errorf("please tell me the venue"), venuePrompt())
	}

	s.Checkpoint()
	s.Draft.Venue = strings.TrimSpace(msg)
	s.Step = domain.StepCompany
	return companyPrompt(s.Service)
}

func (r *Router) handleCompany(ctx context.Context, s *domain.Session, msg string) domain.Response {
	if strings.TrimSpace(msg) == "" {
		return retry(fmt.Errorf("please tell me the company or team name"), companyPrompt(s.Service))
	}

	s.Checkpoint()
	s.Draft.Company = strings.TrimSpace(msg)
	s.Step = domain.StepContactName
	return contactNamePrompt()
}

func (r *Router) handleContactName(ctx context.Context, s *domain.Session, msg string) domain.Response {
	if strings.TrimSpace(msg) == "" {
		return retry(fmt.Errorf("please give me a contact name"), contactNamePrompt())
	}

	s.Draft.ContactName = strings.TrimSpace(msg)
	s.Step = domain.StepContactTitle
	return contactTitlePrompt()
}

func (r *Router) handleContactTitle(ctx context.Context, s *domain.Session, msg string) domain.Response {
	if strings.TrimSpace(msg) == "" {
		return retry(fmt.Errorf("please give me the contact's title"), contactTitlePrompt())
	}

	s.Draft.ContactTitle = strings.TrimSpace(msg)
	s.Step = domain.StepContactPhone
	return contactPhonePrompt()
}

func (r *Router) handleContactPhone(ctx context.Context, s *domain.Session, msg string) domain.Response {
	phone, err := validate.Phone(msg)
	if err != nil {
		return retry(err, contactPhonePrompt())
	}

	s.Checkpoint()
	s.Draft.ContactPhone = phone
	s.Step = domain.StepConfirm
	return confirmPrompt(s)
}

// handleConfirm is the terminal step: the only handler that touches the
// quote engine and the external collaborators.
func (r *Router) handleConfirm(ctx context.Context, s *domain.Session, msg string) domain.Response {
	vocab := r.cfg.Vocabulary
	switch {
	case matchesAny(msg, vocab.ConfirmKeywords):
		// fall through to submission below
	case matchesAny(msg, vocab.DeclineKeywords):
		return domain.Reply(
			"No problem. Say \"go back\" to change your phone number, or \"start over\" to begin again.",
			"Go back", "go back",
			"Start over", "start over",
		)
	default:
		resp := confirmPrompt(s)
		resp.Text = "Please confirm or decline.\n\n" + resp.Text
		return resp
	}

	if s.Service == domain.ServiceMembership {
		return r.submitMembership(ctx, s)
	}

	q, err := quote.Compute(s.Draft.Specs, r.cfg.Pricing)
	if err != nil {
		// Internal consistency failure: fatal to this request only. The
		// session stays at confirmation so the user can retry.
		r.logger.Error("quote computation failed", "user_id", s.UserID, "err", err)
		return apologyPrompt()
	}
	r.metrics.quote(q.Total)

	submitErr := r.submit(ctx, s, q)

	s.Step = domain.StepDone
	s.Undo = nil

	text := quote.RenderText(s.Draft.Specs, q)
	if submitErr != nil {
		text += "\n\nYour quote is calculated, but saving the request failed on our side. " +
			"Our team has been alerted; you don't need to do anything."
	} else {
		text += "\n\nYour request has been sent to our team. We'll be in touch shortly!"
	}
	return domain.Reply(text, "Start over", "start over")
}

func (r *Router) handleDone(ctx context.Context, s *domain.Session, msg string) domain.Response {
	return donePrompt()
}

// submit hands the finalized request to the external collaborators. Their
// failures are logged and surfaced as a qualified success, never rolled back.
func (r *Router) submit(ctx context.Context, s *domain.Session, q domain.Quote) error {
	record := &ports.EventRecord{
		UserID:  s.UserID,
		Service: s.Service,
		Draft:   s.Draft,
		Quote:   q,
	}

	var firstErr error
	if r.recorder != nil {
		id, err := r.recorder.Record(ctx, record)
		if err != nil {
			r.metrics.collabFailure("recorder")
			r.logger.Error("failed to record event", "user_id", s.UserID, "err", err)
			firstErr = err
		} else {
			r.logger.Info("event recorded", "user_id", s.UserID, "record_id", id)
		}
	}

	if r.notifier != nil {
		summary := fmt.Sprintf("%s request from %s (%s): %d wall(s), %s won total",
			s.Service, s.Draft.Company, s.Draft.ContactName, len(s.Draft.Specs), quote.Won(q.Total))
		if err := r.notifier.Notify(ctx, s.Service, summary); err != nil {
			r.metrics.collabFailure("notifier")
			r.logger.Error("failed to notify managers", "user_id", s.UserID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (r *Router) submitMembership(ctx context.Context, s *domain.Session) domain.Response {
	submitErr := r.submit(ctx, s, domain.Quote{})

	s.Step = domain.StepDone
	s.Undo = nil

	text := "Thank you! Our membership manager will contact " +
		s.Draft.ContactName + " at " + s.Draft.ContactPhone + " with a tailored plan."
	if submitErr != nil {
		text += "\n\nSaving the request failed on our side; our team has been alerted."
	}
	return domain.Reply(text, "Start over", "start over")
}
