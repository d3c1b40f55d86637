package conversation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledscape/intake/pkg/adapters/memory"
	"github.com/ledscape/intake/pkg/config"
	"github.com/ledscape/intake/pkg/conversation"
	"github.com/ledscape/intake/pkg/domain"
	"github.com/ledscape/intake/pkg/ports"
	"github.com/ledscape/intake/pkg/session"
)

// fakeRecorder captures records and can be told to fail.
type fakeRecorder struct {
	records []*ports.EventRecord
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, record *ports.EventRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, record)
	return "rec-1", nil
}

type fakeNotifier struct {
	summaries []string
	err       error
}

func (f *fakeNotifier) Notify(ctx context.Context, service domain.ServiceType, summary string) error {
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

type fixture struct {
	router   *conversation.Router
	manager  *session.Manager
	recorder *fakeRecorder
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	manager := session.NewManager(memory.NewStore())
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	router := conversation.New(manager, config.Default(),
		conversation.WithRecorder(recorder),
		conversation.WithNotifier(notifier),
	)
	return &fixture{router: router, manager: manager, recorder: recorder, notifier: notifier}
}

// say sends one message and asserts no transport-level error.
func (f *fixture) say(t *testing.T, userID, text string) domain.Response {
	t.Helper()
	resp, err := f.router.Handle(context.Background(), userID, text)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Text, "the router must always produce some reply")
	return resp
}

func (f *fixture) session(t *testing.T, userID string) *domain.Session {
	t.Helper()
	s, err := f.manager.Load(context.Background(), userID)
	require.NoError(t, err)
	return s
}

// walk drives a user to the final confirmation of a single-wall rental.
func (f *fixture) walkToConfirm(t *testing.T, userID string) {
	t.Helper()
	f.say(t, userID, "hello")
	f.say(t, userID, "rental")
	f.say(t, userID, "1")
	f.say(t, userID, "6000x3000")
	f.say(t, userID, "600")
	f.say(t, userID, "no")
	f.say(t, userID, "2026-09-20 ~ 2026-09-22")
	f.say(t, userID, "COEX Hall D, Seoul")
	f.say(t, userID, "Acme Events")
	f.say(t, userID, "Kim Minji")
	f.say(t, userID, "Manager")
	f.say(t, userID, "010-1234-5678")
}

func TestRouter_FullInstallFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.say(t, "u1", "hi")
	assert.Contains(t, resp.Text, "What kind of service")
	require.Len(t, resp.QuickReplies, 3)

	resp = f.say(t, "u1", "LED Installation")
	assert.Contains(t, resp.Text, "How many LED walls")

	resp = f.say(t, "u1", "2")
	assert.Contains(t, resp.Text, "LED #1 of 2")

	f.say(t, "u1", "4000x2500")
	f.say(t, "u1", "0")
	resp = f.say(t, "u1", "yes")
	assert.Contains(t, resp.Text, "how many days")

	resp = f.say(t, "u1", "3")
	assert.Contains(t, resp.Text, "LED #2 of 2", "the loop must advance to the next LED point")

	f.say(t, "u1", "2000x1500")
	f.say(t, "u1", "600")
	resp = f.say(t, "u1", "no")
	assert.Contains(t, resp.Text, "When does your event run")

	f.say(t, "u1", "2026-10-01 ~ 2026-10-03")
	f.say(t, "u1", "KINTEX Hall 5")
	f.say(t, "u1", "Acme Corp")
	f.say(t, "u1", "Lee Jiho")
	f.say(t, "u1", "Director")
	resp = f.say(t, "u1", "010-9876-5432")
	assert.Contains(t, resp.Text, "Shall I calculate the quote")

	resp = f.say(t, "u1", "yes")
	assert.Contains(t, resp.Text, "Here is your quote")
	assert.Contains(t, resp.Text, "Total modules: 52") // 40 + 12
	assert.Contains(t, resp.Text, "sent to our team")

	// Collaborators got the finalized record.
	require.Len(t, f.recorder.records, 1)
	record := f.recorder.records[0]
	assert.Equal(t, domain.ServiceInstall, record.Service)
	assert.Equal(t, 52, record.Quote.TotalModules)
	assert.Equal(t, "010-9876-5432", record.Draft.ContactPhone)
	require.Len(t, f.notifier.summaries, 1)
	assert.Contains(t, f.notifier.summaries[0], "Acme Corp")

	s, err := f.manager.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepDone, s.Step)
}

func TestRouter_InvalidInputDoesNotAdvance(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	f.say(t, "u1", "rental")
	f.say(t, "u1", "1")

	// Three bad sizes in a row: same step, re-asked each time.
	resp := f.say(t, "u1", "6100x3000")
	assert.Contains(t, resp.Text, "500mm units")
	resp = f.say(t, "u1", "400x400")
	assert.Contains(t, resp.Text, "minimum 500×500mm")
	resp = f.say(t, "u1", "huge")
	assert.Contains(t, resp.Text, "WIDTHxHEIGHT")

	assert.Equal(t, domain.StepLEDSize, f.session(t, "u1").Step)

	// Valid input finally advances.
	resp = f.say(t, "u1", "6000x3000")
	assert.Contains(t, resp.Text, "stage")
	assert.Equal(t, domain.StepStageHeight, f.session(t, "u1").Step)
}

func TestRouter_ResetFromAnyStep(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	f.say(t, "u1", "install")
	f.say(t, "u1", "2")
	f.say(t, "u1", "4000x2500")

	resp := f.say(t, "u1", "start over")
	assert.Contains(t, resp.Text, "What kind of service")

	s := f.session(t, "u1")
	assert.Equal(t, domain.StepStart, s.Step)
	assert.Equal(t, 0, s.LEDCount)
	assert.Equal(t, 1, s.CurrentLED)
	assert.Empty(t, s.Draft.Specs)
}

func TestRouter_ServiceChoiceRightAfterReset(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	f.say(t, "u1", "rental")
	f.say(t, "u1", "start over")

	// The welcome quick replies are already showing; tapping one must not
	// be swallowed by the start step.
	resp := f.say(t, "u1", "rental")
	assert.Contains(t, resp.Text, "How many LED walls")
	assert.Equal(t, domain.ServiceRental, f.session(t, "u1").Service)
}

func TestRouter_GoBackOneLevelOnly(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	f.say(t, "u1", "rental")

	// Answering the count question checkpoints the pre-answer state.
	f.say(t, "u1", "2")
	require.Equal(t, domain.StepLEDSize, f.session(t, "u1").Step)

	resp := f.say(t, "u1", "go back")
	assert.Contains(t, resp.Text, "How many LED walls")
	assert.Equal(t, domain.StepLEDCount, f.session(t, "u1").Step)

	// Second consecutive go-back: nothing to restore, session unchanged.
	before := f.session(t, "u1")
	resp = f.say(t, "u1", "go back")
	assert.Contains(t, resp.Text, "nothing to go back to")
	after := f.session(t, "u1")
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.LEDCount, after.LEDCount)
}

func TestRouter_GoBackOnFreshSession(t *testing.T) {
	f := newFixture(t)

	resp := f.say(t, "u1", "go back")
	assert.Contains(t, resp.Text, "nothing to go back to")
}

func TestRouter_ModifyIntentDoesNotMutate(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	f.say(t, "u1", "rental")
	f.say(t, "u1", "1")
	before := f.session(t, "u1")

	resp := f.say(t, "u1", "I want to modify my answer")
	assert.Contains(t, resp.Text, "restart from the beginning")
	require.Len(t, resp.QuickReplies, 2)

	after := f.session(t, "u1")
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.LEDCount, after.LEDCount)

	// "continue" re-renders the pending question.
	resp = f.say(t, "u1", "continue")
	assert.Contains(t, resp.Text, "what size")
}

func TestRouter_MembershipShortFlow(t *testing.T) {
	f := newFixture(t)

	f.say(t, "u1", "hi")
	resp := f.say(t, "u1", "membership")
	assert.Contains(t, resp.Text, "company or team")

	f.say(t, "u1", "Acme Corp")
	f.say(t, "u1", "Park Jun")
	f.say(t, "u1", "CEO")
	resp = f.say(t, "u1", "010-1111-2222")
	assert.Contains(t, resp.Text, "membership inquiry")

	resp = f.say(t, "u1", "yes")
	assert.Contains(t, resp.Text, "membership manager will contact")

	require.Len(t, f.recorder.records, 1)
	assert.Equal(t, domain.ServiceMembership, f.recorder.records[0].Service)
	assert.Zero(t, f.recorder.records[0].Quote.TotalModules)
}

func TestRouter_CollaboratorFailureIsQualifiedSuccess(t *testing.T) {
	f := newFixture(t)
	f.recorder.err = errors.New("sheet api down")

	f.walkToConfirm(t, "u1")
	resp := f.say(t, "u1", "yes")

	// The quote is still delivered; the failure is reported in-band.
	assert.Contains(t, resp.Text, "Here is your quote")
	assert.Contains(t, resp.Text, "saving the request failed")
	assert.Equal(t, domain.StepDone, f.session(t, "u1").Step)
}

func TestRouter_DeclineAtConfirmation(t *testing.T) {
	f := newFixture(t)

	f.walkToConfirm(t, "u1")
	resp := f.say(t, "u1", "not yet")
	assert.Contains(t, resp.Text, "No problem")
	assert.Equal(t, domain.StepConfirm, f.session(t, "u1").Step)

	// Still possible to confirm afterwards.
	resp = f.say(t, "u1", "confirm")
	assert.Contains(t, resp.Text, "Here is your quote")
}

func TestRouter_DoneStepPointsToRestart(t *testing.T) {
	f := newFixture(t)

	f.walkToConfirm(t, "u1")
	f.say(t, "u1", "yes")

	resp := f.say(t, "u1", "hello again")
	assert.Contains(t, resp.Text, "start over")

	resp = f.say(t, "u1", "start over")
	assert.Contains(t, resp.Text, "What kind of service")
}

func TestRouter_UnknownStepFallsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := domain.NewSession("u1")
	s.Step = domain.Step("haunted")
	require.NoError(t, f.manager.Save(ctx, "u1", s))

	resp := f.say(t, "u1", "hello?")
	assert.Contains(t, resp.Text, "didn't understand")

	// The escape hatch works from the unknown state.
	resp = f.say(t, "u1", "start over")
	assert.Contains(t, resp.Text, "What kind of service")
}

func TestRouter_InternalInconsistencyApologizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A confirm-step session with no specs can only come from a bug; the
	// router must apologize and leave the session at confirmation.
	s := domain.NewSession("u1")
	s.Step = domain.StepConfirm
	s.Service = domain.ServiceRental
	require.NoError(t, f.manager.Save(ctx, "u1", s))

	resp := f.say(t, "u1", "yes")
	assert.Contains(t, resp.Text, "something went wrong")
	assert.Equal(t, domain.StepConfirm, f.session(t, "u1").Step)
	assert.Empty(t, f.recorder.records)
}

func TestRouter_OversizedMessageRejectedPolitely(t *testing.T) {
	f := newFixture(t)

	resp := f.say(t, "u1", strings.Repeat("a", conversation.MaxInputSize+1))
	assert.Contains(t, resp.Text, "couldn't read that message")
}

func TestSanitizeInput(t *testing.T) {
	got, err := conversation.SanitizeInput("hello\tworld\n")
	require.NoError(t, err)
	assert.Equal(t, "hello\tworld\n", got)

	got, err = conversation.SanitizeInput("6000\x1b[31mx3000\x00")
	require.NoError(t, err)
	assert.Equal(t, "6000[31mx3000", got)

	_, err = conversation.SanitizeInput(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, conversation.ErrInvalidUTF8)

	_, err = conversation.SanitizeInput(strings.Repeat("x", conversation.MaxInputSize+1))
	assert.ErrorIs(t, err, conversation.ErrInputTooLarge)
}
