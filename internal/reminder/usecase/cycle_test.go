package usecase

import (
	"context"
	"testing"
	"time"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository/memory"
	"followup-srv/pkg/redact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCycle_ExpertEmailWithoutProfile(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d1", 20)
	d.ExpertName = "M. Martin"
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, reminder.ChannelCounts{Sent: 1}, res.ExpertEmail)
	assert.Empty(t, res.Errors)

	got := e.entries("d1", "")
	require.Len(t, got, 1)
	assert.Equal(t, model.ChannelExpertEmail, got[0].Channel)
	assert.Equal(t, model.OutcomeSent, got[0].Outcome)
	assert.Equal(t, "<msg-1@garage.fr>", got[0].ExternalRef)

	require.Len(t, e.mailer.sent, 1)
	assert.Equal(t, "atelier@garage.fr", e.mailer.sent[0].From)
	assert.Contains(t, e.mailer.sent[0].Subject, "REF-d1")
	assert.Contains(t, e.mailer.sent[0].Body, "M. Martin")
	assert.Contains(t, e.mailer.sent[0].Body, "20 jours")

	after := e.dossier(t, "d1")
	assert.Equal(t, model.DossierStatusExpertReminded, after.Status)
	require.NotNil(t, after.LastExpertReminderAt)
	assert.True(t, testNow.Equal(*after.LastExpertReminderAt))
	assert.Zero(t, e.factory.built)
}

func TestRunCycle_StopOnExpertReport(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d2", 20)
	d.ExpertEmail = "martin@cabinet-expert.fr"
	d.NotifyClient = true
	d.ClientID = ptr("c2")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c2", FirstName: "Lea", Phone: "0612345678", Email: "lea@example.fr"})
	e.repo.PutDocument(model.Document{ID: "doc-1", DossierID: "d2", Type: model.DocumentTypeExpertReport, CreatedAt: testNow})

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stopped)
	assert.Zero(t, res.TotalSent())

	got := e.entries("d2", "")
	require.Len(t, got, 1)
	assert.Equal(t, model.ChannelSystemStop, got[0].Channel)
	assert.Equal(t, reminder.ReasonArtifactReceived, got[0].Message)
	assert.Equal(t, string(model.DocumentTypeExpertReport), got[0].ArtifactType)

	after := e.dossier(t, "d2")
	assert.Equal(t, model.DossierStatusReportReceived, after.Status)
	assert.NotNil(t, after.ReportReceivedAt)
	assert.Empty(t, e.mailer.sent)
	assert.Empty(t, e.sms.to)
}

func TestRunCycle_ClientSMSOnlyWhenEmailDisabled(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d3", 10)
	d.NotifyClient = true
	d.ClientID = ptr("c3")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c3", FirstName: "Lea", LastName: "Durand", Phone: "06 12 34 56 78", Email: "lea@example.fr"})
	e.repo.PutClientPreference(model.ClientPreference{ClientID: "c3", SMSEnabled: ptr(true), EmailEnabled: ptr(false)})

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Len(t, e.entries("d3", model.ChannelClientSMS), 1)
	assert.Empty(t, e.entries("d3", model.ChannelClientEmail))
	assert.Equal(t, reminder.ChannelCounts{Sent: 1}, res.ClientSMS)

	require.Equal(t, []string{"+33612345678"}, e.sms.to)
	assert.Contains(t, e.sms.bodies[0], "Lea Durand")
	assert.Contains(t, e.sms.bodies[0], "REF-d3")
	assert.Contains(t, e.sms.bodies[0], "10 jours")
}

func TestRunCycle_ClientDualSendByDefault(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d4", 10)
	d.NotifyClient = true
	d.ClientID = ptr("c4")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c4", FirstName: "Paul", Phone: "+33 6 98 76 54 32", Email: "paul@example.fr"})

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.ClientSMS.Sent)
	assert.Equal(t, 1, res.ClientEmail.Sent)
	require.Len(t, e.mailer.sent, 1)
	assert.Equal(t, "paul@example.fr", e.mailer.sent[0].To)
}

func TestRunCycle_ClientChannelsGated(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSetting(model.SettingClientSMSEnabled, "false")

	d := awaitingDossier("d5", 10)
	d.ClientID = ptr("c5")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c5", Phone: "0612345678", Email: "c5@example.fr"})

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, e.entries("d5", ""))
}

func TestRunCycle_InvalidPhoneIsFailedAttempt(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d6", 10)
	d.ClientID = ptr("c6")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c6", Phone: "12"})

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d6", model.ChannelClientSMS)
	require.Len(t, got, 1)
	assert.Equal(t, model.OutcomeFailed, got[0].Outcome)
	assert.NotEmpty(t, got[0].FailureDetail)
	assert.Equal(t, 1, res.ClientSMS.Failed)
	assert.Empty(t, e.sms.to)
}

func TestRunCycle_SkipsInsideMinimumInterval(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSetting(model.SettingMinDaysBetweenReminder, "3")

	d := awaitingDossier("d7", 30)
	d.Status = model.DossierStatusExpertReminded
	d.LastExpertReminderAt = ptr(testNow.Add(-36 * time.Hour))
	d.ExpertEmail = "martin@cabinet-expert.fr"
	d.ClientID = ptr("c7")
	e.repo.PutDossier(d)
	e.repo.PutClient(model.Client{ID: "c7", Phone: "0612345678"})

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, e.entries("d7", ""))
	assert.Empty(t, e.mailer.sent)
	assert.Empty(t, e.sms.to)
}

func TestRunCycle_IdempotentBackToBack(t *testing.T) {
	e := newEngine(t)
	for _, id := range []string{"a", "b"} {
		d := awaitingDossier(id, 5)
		d.ExpertEmail = id + "@cabinet-expert.fr"
		e.repo.PutDossier(d)
	}

	first, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.ExpertEmail.Sent)

	second, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Skipped)
	assert.Zero(t, second.TotalSent())
	assert.Len(t, e.mailer.sent, 2)
}

func TestRunCycle_PortalFailureFallsBackToEmail(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())
	e.factory.capability = &fakeCapability{connectErr: automation.NewActionError(automation.ActionConnect, automation.KindConnection, errBoom)}

	d := awaitingDossier("d8", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d8", "")
	require.Len(t, got, 2)
	assert.Equal(t, model.ChannelExpertPortal, got[0].Channel)
	assert.Equal(t, model.OutcomeFailed, got[0].Outcome)
	assert.Contains(t, got[0].FailureDetail, "connect")
	assert.Equal(t, model.ChannelExpertEmail, got[1].Channel)
	assert.Equal(t, model.OutcomeSent, got[1].Outcome)

	assert.Equal(t, reminder.ChannelCounts{Failed: 1}, res.ExpertPortal)
	assert.Equal(t, reminder.ChannelCounts{Sent: 1}, res.ExpertEmail)
	assert.Equal(t, 1, e.factory.capability.cleanups)
	assert.Equal(t, model.DossierStatusExpertReminded, e.dossier(t, "d8").Status)
}

func TestRunCycle_StatusAdvancesOnlyOnEmailSuccess(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())
	e.factory.capability = &fakeCapability{found: false}
	e.mailer.err = errBoom

	d := awaitingDossier("d9", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d9", "")
	require.Len(t, got, 2)
	assert.Equal(t, model.OutcomeFailed, got[0].Outcome)
	assert.Contains(t, got[0].FailureDetail, "not_found")
	assert.Equal(t, model.OutcomeFailed, got[1].Outcome)

	after := e.dossier(t, "d9")
	assert.Equal(t, model.DossierStatusAwaitingExpert, after.Status)
	assert.Nil(t, after.LastExpertReminderAt)
}

func TestRunCycle_PortalSuccessSkipsEmail(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())

	d := awaitingDossier("d10", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d10", "")
	require.Len(t, got, 1)
	assert.Equal(t, model.ChannelExpertPortal, got[0].Channel)
	assert.Equal(t, model.OutcomeSent, got[0].Outcome)
	assert.Equal(t, "Portail Expert", got[0].Recipient)
	assert.Equal(t, 1, res.ExpertPortal.Sent)
	require.Len(t, e.factory.capability.messages, 1)
	assert.Contains(t, e.factory.capability.messages[0], "SIN-d10")
	assert.Equal(t, 1, e.factory.capability.cleanups)
	assert.Empty(t, e.mailer.sent)
	assert.Equal(t, model.DossierStatusExpertReminded, e.dossier(t, "d10").Status)
}

func TestRunCycle_PortalReportFoundRegistersDocument(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())
	e.factory.capability = &fakeCapability{
		found:  true,
		report: automation.ReportResult{Found: true, URL: "https://portal.example/docs/rapport.pdf"},
	}

	d := awaitingDossier("d11", 10)
	d.SiteProfileID = ptr("site-1")
	e.repo.PutDossier(d)

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d11", model.ChannelExpertPortal)
	require.Len(t, got, 1)
	assert.Equal(t, "https://portal.example/docs/rapport.pdf", got[0].ExternalRef)
	assert.Equal(t, string(model.DocumentTypeExpertReport), got[0].ArtifactType)
	assert.Empty(t, e.factory.capability.messages)

	decision, err := e.uc.ShouldStop(context.Background(), "d11")
	require.NoError(t, err)
	assert.True(t, decision.Stop)
	assert.Equal(t, model.DocumentTypeExpertReport, decision.ArtifactType)
	assert.Equal(t, model.DossierStatusReportReceived, e.dossier(t, "d11").Status)
}

func TestRunCycle_PortalPanicReleasesAndFallsBack(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())
	e.factory.capability = &fakeCapability{found: true, panicOnSend: true}

	d := awaitingDossier("d12", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, e.factory.capability.cleanups)
	assert.Equal(t, 1, res.ExpertPortal.Failed)
	assert.Equal(t, 1, res.ExpertEmail.Sent)
	assert.Empty(t, res.Errors)
}

func TestRunCycle_PortalErrorsNeverLeakCredentials(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSiteProfile(portalProfile())
	e.factory.capability = &fakeCapability{connectErr: errFromPortal("login rejected for garage / Sup3rS3cret!")}

	d := awaitingDossier("d13", 10)
	d.SiteProfileID = ptr("site-1")
	e.repo.PutDossier(d)

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d13", model.ChannelExpertPortal)
	require.Len(t, got, 1)
	assert.NotContains(t, got[0].FailureDetail, "Sup3rS3cret!")
	assert.Contains(t, got[0].FailureDetail, redact.Marker)
}

func TestRunCycle_SiteBusyFallsBack(t *testing.T) {
	e := newEngine(t)
	e.uc.lock = lockStub{busy: true}
	e.repo.PutSiteProfile(portalProfile())

	d := awaitingDossier("d14", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	portal := e.entries("d14", model.ChannelExpertPortal)
	require.Len(t, portal, 1)
	assert.Contains(t, portal[0].FailureDetail, "already running")
	assert.Zero(t, e.factory.built)
	assert.Len(t, e.entries("d14", model.ChannelExpertEmail), 1)
}

func TestRunCycle_UnavailableProfileGoesStraightToEmail(t *testing.T) {
	e := newEngine(t)
	p := portalProfile()
	p.Credentials = nil
	e.repo.PutSiteProfile(p)

	d := awaitingDossier("d15", 10)
	d.SiteProfileID = ptr("site-1")
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Empty(t, e.entries("d15", model.ChannelExpertPortal))
	assert.Len(t, e.entries("d15", model.ChannelExpertEmail), 1)
	assert.Zero(t, e.factory.built)
}

func TestRunCycle_MissingSenderIsConfigurationFailure(t *testing.T) {
	e := newEngine(t)
	e.repo.PutSetting(model.SettingSenderEmail, "")

	d := awaitingDossier("d16", 10)
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	got := e.entries("d16", model.ChannelExpertEmail)
	require.Len(t, got, 1)
	assert.Equal(t, model.OutcomeFailed, got[0].Outcome)
	assert.Contains(t, got[0].FailureDetail, "sender email")
	assert.Equal(t, 1, res.ExpertEmail.Failed)
	assert.Equal(t, model.DossierStatusAwaitingExpert, e.dossier(t, "d16").Status)
}

func TestRunCycle_NothingAddressable(t *testing.T) {
	e := newEngine(t)
	e.repo.PutDossier(awaitingDossier("d17", 10))

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, e.entries("d17", ""))
	assert.Equal(t, model.DossierStatusAwaitingExpert, e.dossier(t, "d17").Status)
	assert.Equal(t, 1, res.Processed)
}

func TestRunCycle_DossierErrorDoesNotAbortCycle(t *testing.T) {
	e := newEngine(t)
	e.repo.FailOn(memory.OpGetClient, errBoom)

	first := awaitingDossier("e1", 12)
	first.ClientID = ptr("c-err")
	first.ExpertEmail = "x@cabinet-expert.fr"
	e.repo.PutDossier(first)

	second := awaitingDossier("e2", 10)
	second.ExpertEmail = "y@cabinet-expert.fr"
	e.repo.PutDossier(second)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "REF-e1: ")
	assert.Equal(t, 2, res.ExpertEmail.Sent)
	assert.Equal(t, 2, res.Processed)
}

func TestRunCycle_FetchOrder(t *testing.T) {
	e := newEngine(t)
	for _, d := range []struct {
		id   string
		days int
	}{{"late", 3}, {"early", 30}, {"mid", 10}} {
		dd := awaitingDossier(d.id, d.days)
		dd.ExpertEmail = d.id + "@cabinet-expert.fr"
		e.repo.PutDossier(dd)
	}

	_, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Len(t, e.mailer.sent, 3)
	assert.Equal(t, "early@cabinet-expert.fr", e.mailer.sent[0].To)
	assert.Equal(t, "mid@cabinet-expert.fr", e.mailer.sent[1].To)
	assert.Equal(t, "late@cabinet-expert.fr", e.mailer.sent[2].To)
}

func TestRunCycle_FatalLoadFailures(t *testing.T) {
	t.Run("settings", func(t *testing.T) {
		e := newEngine(t)
		e.repo.FailOn(memory.OpLoadSettings, errBoom)
		e.repo.PutDossier(awaitingDossier("d", 10))

		res, err := e.uc.RunCycle(context.Background())
		assert.ErrorIs(t, err, reminder.ErrSettingsLoad)
		assert.Zero(t, res.Processed)
		assert.NotNil(t, res.Errors)
	})

	t.Run("dossier list", func(t *testing.T) {
		e := newEngine(t)
		e.repo.FailOn(memory.OpListAwaitingDossiers, errBoom)

		_, err := e.uc.RunCycle(context.Background())
		assert.ErrorIs(t, err, reminder.ErrDossierList)
	})
}

type portalErr string

func (e portalErr) Error() string { return string(e) }

func errFromPortal(msg string) error { return portalErr(msg) }

func TestRunCycle_LedgerFailureKeepsSentEmail(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d18", 10)
	d.ExpertEmail = "martin@cabinet-expert.fr"
	e.repo.PutDossier(d)
	e.ledger.FailWith(errBoom)

	res, err := e.uc.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, reminder.ChannelCounts{Sent: 1}, res.ExpertEmail)
	assert.Empty(t, res.Errors)
	assert.Empty(t, e.entries("d18", ""))
	require.Len(t, e.mailer.sent, 1)

	after := e.dossier(t, "d18")
	assert.Equal(t, model.DossierStatusExpertReminded, after.Status)
	require.NotNil(t, after.LastExpertReminderAt)
	assert.True(t, testNow.Equal(*after.LastExpertReminderAt))
}

func TestRunCycle_WritesOutliveDossierDeadline(t *testing.T) {
	tests := []struct {
		name      string
		portal    bool
		slowMail  bool
		wantPortal reminder.ChannelCounts
	}{
		{
			name:      "portal session uses its own budget",
			portal:    true,
			wantPortal: reminder.ChannelCounts{Failed: 1},
		},
		{
			name:     "slow email consumes the dossier budget",
			slowMail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			e.uc.cfg.DossierTimeout = 150 * time.Millisecond
			e.uc.cfg.PortalTimeout = 60 * time.Millisecond
			e.uc.recorder = deadlineRecorder{Recorder: e.recorder}
			e.uc.repo = deadlineRepo{Repository: e.repo}
			e.mailer.slow = tt.slowMail

			d := awaitingDossier("d19", 10)
			d.ExpertEmail = "martin@cabinet-expert.fr"
			if tt.portal {
				e.repo.PutSiteProfile(portalProfile())
				e.factory.capability = &fakeCapability{blockConnect: true}
				d.SiteProfileID = ptr("site-1")
			}
			e.repo.PutDossier(d)

			res, err := e.uc.RunCycle(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantPortal, res.ExpertPortal)
			assert.Equal(t, reminder.ChannelCounts{Sent: 1}, res.ExpertEmail)

			got := e.entries("d19", "")
			if tt.portal {
				require.Len(t, got, 2)
				assert.Equal(t, model.ChannelExpertPortal, got[0].Channel)
				assert.Equal(t, model.OutcomeFailed, got[0].Outcome)
				assert.Equal(t, 1, e.factory.capability.cleanups)
			} else {
				require.Len(t, got, 1)
			}
			last := got[len(got)-1]
			assert.Equal(t, model.ChannelExpertEmail, last.Channel)
			assert.Equal(t, model.OutcomeSent, last.Outcome)
			assert.Equal(t, model.DossierStatusExpertReminded, e.dossier(t, "d19").Status)
		})
	}
}
