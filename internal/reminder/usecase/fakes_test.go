package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"followup-srv/internal/audit"
	auditMemory "followup-srv/internal/audit/repository/memory"
	auditUC "followup-srv/internal/audit/usecase"
	"followup-srv/internal/automation"
	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
	"followup-srv/internal/reminder/repository/memory"
	"followup-srv/pkg/email"
	"followup-srv/pkg/log"
	"followup-srv/pkg/sms"
)

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fakeCapability struct {
	connectErr   error
	blockConnect bool
	found       bool
	report      automation.ReportResult
	sendErr     error
	panicOnSend bool
	messages    []string
	cleanups    int
}

func (c *fakeCapability) Connect(ctx context.Context) error {
	if c.blockConnect {
		<-ctx.Done()
		return ctx.Err()
	}
	return c.connectErr
}

func (c *fakeCapability) Search(context.Context, string, string) (automation.SearchResult, error) {
	return automation.SearchResult{Found: c.found}, nil
}

func (c *fakeCapability) CheckAndRetrieveReport(context.Context) (automation.ReportResult, error) {
	return c.report, nil
}

func (c *fakeCapability) SendMessage(_ context.Context, body string) error {
	if c.panicOnSend {
		panic("composer vanished")
	}
	c.messages = append(c.messages, body)
	return c.sendErr
}

func (c *fakeCapability) Cleanup() { c.cleanups++ }

type fakeFactory struct {
	capability *fakeCapability
	err        error
	built      int
}

func (f *fakeFactory) New(*model.SiteProfile) (automation.Capability, error) {
	f.built++
	if f.err != nil {
		return nil, f.err
	}
	return f.capability, nil
}

type fakeMailer struct {
	sent []email.Message
	err  error
	// slow makes Send return only once the caller's deadline has passed.
	slow bool
}

func (m *fakeMailer) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	if m.slow {
		<-ctx.Done()
	}
	if m.err != nil {
		return email.Receipt{}, m.err
	}
	m.sent = append(m.sent, msg)
	return email.Receipt{ID: fmt.Sprintf("<msg-%d@garage.fr>", len(m.sent))}, nil
}

type fakeSMS struct {
	to     []string
	bodies []string
	status string
	err    error
}

func (s *fakeSMS) Send(_ context.Context, to, body string) (sms.Receipt, error) {
	if s.err != nil {
		return sms.Receipt{}, s.err
	}
	s.to = append(s.to, to)
	s.bodies = append(s.bodies, body)
	return sms.Receipt{MessageID: fmt.Sprintf("sms-%d", len(s.to)), Status: s.status}, nil
}

type lockStub struct {
	busy bool
	err  error
}

func (l lockStub) Acquire(context.Context, string) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	if l.busy {
		return nil, false, nil
	}
	return func() {}, true, nil
}

// deadlineRecorder rejects writes on a finished context the way database/sql does.
type deadlineRecorder struct {
	audit.Recorder
}

func (r deadlineRecorder) Record(ctx context.Context, attempt model.ReminderAttempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Recorder.Record(ctx, attempt)
}

type unreadableLedger struct {
	audit.Recorder
}

func (unreadableLedger) HasAttempt(context.Context, string, model.Channel) (bool, error) {
	return false, errBoom
}

type deadlineRepo struct {
	memory.Repository
}

func (r deadlineRepo) MarkExpertReminded(ctx context.Context, opts repository.MarkExpertRemindedOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Repository.MarkExpertReminded(ctx, opts)
}

type engine struct {
	uc       *implUseCase
	repo     memory.Repository
	ledger   auditMemory.Repository
	recorder audit.UseCase
	factory  *fakeFactory
	mailer   *fakeMailer
	sms      *fakeSMS
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	e := &engine{
		repo:    memory.New(),
		ledger:  auditMemory.New(),
		factory: &fakeFactory{capability: &fakeCapability{found: true}},
		mailer:  &fakeMailer{},
		sms:     &fakeSMS{},
	}
	e.recorder = auditUC.New(e.ledger, nil, log.NewNop())
	e.uc = New(log.NewNop(), Deps{
		Repo:     e.repo,
		Recorder: e.recorder,
		Factory:  e.factory,
		Lock:     memory.NewSiteLock(),
		Mailer:   e.mailer,
		SMS:      e.sms,
	}, Config{DossierTimeout: 5 * time.Second}).(*implUseCase)
	e.uc.now = func() time.Time { return testNow }

	e.repo.PutSetting(model.SettingSenderEmail, "atelier@garage.fr")
	e.repo.PutSetting(model.SettingMinDaysBetweenReminder, "2")
	return e
}

func (e *engine) entries(dossierID string, channel model.Channel) []model.ReminderAttempt {
	var out []model.ReminderAttempt
	for _, a := range e.ledger.All() {
		if a.DossierID == dossierID && (channel == "" || a.Channel == channel) {
			out = append(out, a)
		}
	}
	return out
}

func (e *engine) dossier(t *testing.T, id string) model.Dossier {
	t.Helper()
	d, err := e.repo.GetDossier(context.Background(), id)
	if err != nil {
		t.Fatalf("dossier %s: %v", id, err)
	}
	return d
}

func awaitingDossier(id string, daysAgo int) model.Dossier {
	return model.Dossier{
		ID:          id,
		Reference:   "REF-" + id,
		ClaimNumber: "SIN-" + id,
		Status:      model.DossierStatusAwaitingExpert,
		EntryDate:   testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func portalProfile() model.SiteProfile {
	return model.SiteProfile{
		ID:        "site-1",
		Name:      "Portail Expert",
		SearchURL: "https://portal.example/search",
		AuthMode:  model.AuthModeFormLogin,
		Active:    true,
		Credentials: model.Credentials{
			model.CredentialUsername: "garage",
			model.CredentialPassword: "Sup3rS3cret!",
		},
	}
}

func ptr[T any](v T) *T { return &v }

var errBoom = errors.New("boom")
