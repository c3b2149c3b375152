package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/email"
	"followup-srv/pkg/minio"
	"followup-srv/pkg/redact"
)

// remindExpert tries the portal first and falls back to email. Neither path being
// applicable is not an error and leaves no ledger entry.
func (uc *implUseCase) remindExpert(ctx context.Context, settings model.ReminderSettings, d model.Dossier, data templateData, result *reminder.CycleResult) {
	if uc.portalApplicable(settings, d) {
		profile, err := uc.repo.GetSiteProfile(ctx, deref(d.SiteProfileID))
		switch {
		case errors.Is(err, repository.ErrNotFound):
			uc.l.Warnf(ctx, "reminder.usecase.remindExpert: dossier %s links a missing site profile", d.ID)
		case err != nil:
			uc.recordAttempt(ctx, result, model.ReminderAttempt{
				DossierID:     d.ID,
				Channel:       model.ChannelExpertPortal,
				Outcome:       model.OutcomeFailed,
				FailureDetail: fmt.Sprintf("site profile unavailable: %v", err),
			})
		case profile.AutomationAvailable():
			if uc.remindViaPortal(ctx, settings, d, profile, data, result) {
				return
			}
		}
	}

	if d.ExpertEmail == "" {
		return
	}
	uc.remindViaExpertEmail(ctx, settings, d, data, result)
}

func (uc *implUseCase) portalApplicable(settings model.ReminderSettings, d model.Dossier) bool {
	return settings.PortalRemindersEnabled && uc.factory != nil && deref(d.SiteProfileID) != ""
}

// remindViaPortal reports whether the portal reminder succeeded. Every outcome is
// recorded. The capability is released on every path, panics included.
func (uc *implUseCase) remindViaPortal(ctx context.Context, settings model.ReminderSettings, d model.Dossier, profile model.SiteProfile, data templateData, result *reminder.CycleResult) (ok bool) {
	attempt := model.ReminderAttempt{
		DossierID: d.ID,
		Channel:   model.ChannelExpertPortal,
		Recipient: profile.Name,
	}
	secrets := profile.Credentials.Secrets()
	fail := func(err error) bool {
		attempt.Outcome = model.OutcomeFailed
		attempt.FailureDetail = redact.Secrets(err.Error(), secrets...)
		uc.recordAttempt(ctx, result, attempt)
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "reminder.usecase.remindViaPortal: panic on dossier %s: %v", d.ID, r)
			ok = fail(fmt.Errorf("portal session aborted: %v", r))
		}
	}()

	pctx, cancel := context.WithTimeout(ctx, uc.cfg.PortalTimeout)
	defer cancel()

	if uc.lock != nil {
		release, acquired, err := uc.lock.Acquire(pctx, profile.ID)
		if err != nil {
			return fail(fmt.Errorf("portal lock unavailable: %w", err))
		}
		if !acquired {
			return fail(reminder.ErrSiteBusy)
		}
		defer release()
	}

	capability, err := uc.factory.New(&profile)
	if err != nil {
		return fail(fmt.Errorf("open portal session: %w", err))
	}
	defer capability.Cleanup()

	message, err := render("expert_portal", settings.Templates.ExpertPortal, data)
	if err != nil {
		return fail(err)
	}
	attempt.Message = message

	res, err := automation.ExecuteFollowUp(pctx, capability, d.ClaimNumber, data.Plate, message)
	if err != nil {
		uc.l.Warnf(ctx, "reminder.usecase.remindViaPortal: dossier %s on %s: %v", d.ID, profile.Name, err)
		return fail(err)
	}

	attempt.Outcome = model.OutcomeSent
	if res.Outcome == automation.FollowUpReportFound {
		attempt.Message = ""
		attempt.ArtifactType = string(model.DocumentTypeExpertReport)
		attempt.ExternalRef = uc.storeReport(ctx, d, res.Report)
	}
	uc.recordAttempt(ctx, result, attempt)
	uc.markReminded(ctx, d)
	return true
}

func (uc *implUseCase) remindViaExpertEmail(ctx context.Context, settings model.ReminderSettings, d model.Dossier, data templateData, result *reminder.CycleResult) {
	attempt := model.ReminderAttempt{
		DossierID: d.ID,
		Channel:   model.ChannelExpertEmail,
		Recipient: d.ExpertEmail,
	}
	fail := func(err error) {
		attempt.Outcome = model.OutcomeFailed
		attempt.FailureDetail = redact.Error(err)
		uc.recordAttempt(ctx, result, attempt)
	}

	if err := uc.checkMailer(settings); err != nil {
		fail(err)
		return
	}

	subject, body, err := renderEmail("expert_email", settings.Subjects.ExpertEmail, settings.Templates.ExpertEmail, data)
	if err != nil {
		fail(err)
		return
	}
	attempt.Message = body

	receipt, err := uc.mailer.Send(ctx, email.Message{
		From:    settings.SenderEmail,
		To:      d.ExpertEmail,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		uc.l.Warnf(ctx, "reminder.usecase.remindViaExpertEmail: dossier %s: %v", d.ID, err)
		fail(err)
		return
	}

	attempt.Outcome = model.OutcomeSent
	attempt.ExternalRef = receipt.ID
	uc.recordAttempt(ctx, result, attempt)
	uc.markReminded(ctx, d)
}

// checkMailer reports a configuration error when email cannot be sent at all.
func (uc *implUseCase) checkMailer(settings model.ReminderSettings) error {
	if settings.SenderEmail == "" {
		return fmt.Errorf("%w: sender email identity is not set", reminder.ErrConfiguration)
	}
	if uc.mailer == nil {
		return fmt.Errorf("%w: email transport is not configured", reminder.ErrConfiguration)
	}
	return nil
}

func (uc *implUseCase) markReminded(ctx context.Context, d model.Dossier) {
	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	err := uc.repo.MarkExpertReminded(wctx, repository.MarkExpertRemindedOptions{
		DossierID: d.ID,
		At:        uc.now().UTC(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.markReminded: Failed to update dossier %s: %v", d.ID, err)
	}
}

// storeReport keeps a report the portal already exposes and registers it as an
// expert_report document so the next stop evaluation halts reminders. It returns
// the object key, or the portal URL when the bytes could not be kept.
func (uc *implUseCase) storeReport(ctx context.Context, d model.Dossier, report automation.ReportResult) string {
	ref := report.URL
	if len(report.Content) > 0 && uc.storage != nil && uc.cfg.ReportBucket != "" {
		key := reportObjectKey(uc.cfg.ReportPrefix, d.ID)
		_, err := uc.storage.UploadFile(ctx, &minio.UploadRequest{
			BucketName:   uc.cfg.ReportBucket,
			ObjectName:   key,
			OriginalName: fmt.Sprintf("rapport-%s.pdf", dossierRef(d)),
			Reader:       bytes.NewReader(report.Content),
			Size:         int64(len(report.Content)),
			ContentType:  reportContentType(report.ContentType),
			Metadata:     map[string]string{"dossier-id": d.ID, "source": "portal"},
		})
		if err != nil {
			uc.l.Errorf(ctx, "reminder.usecase.storeReport: Failed to upload report for dossier %s: %v", d.ID, err)
		} else {
			ref = key
		}
	}
	if ref == "" {
		return ""
	}

	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	_, err := uc.repo.CreateDocument(wctx, repository.CreateDocumentOptions{
		ID:         uuid.New().String(),
		DossierID:  d.ID,
		Type:       model.DocumentTypeExpertReport,
		StorageKey: ref,
		CreatedAt:  uc.now().UTC(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.storeReport: Failed to register report for dossier %s: %v", d.ID, err)
	}
	return ref
}
