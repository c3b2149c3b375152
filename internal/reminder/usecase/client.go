package usecase

import (
	"context"
	"errors"
	"fmt"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/email"
	"followup-srv/pkg/phone"
	"followup-srv/pkg/redact"
)

// remindClient sends the SMS and the email independently; both may fire.
func (uc *implUseCase) remindClient(ctx context.Context, settings model.ReminderSettings, d model.Dossier, data templateData, result *reminder.CycleResult) error {
	clientID := deref(d.ClientID)
	if clientID == "" || (!settings.ClientSMSEnabled && !d.NotifyClient) {
		return nil
	}

	client, err := uc.repo.GetClient(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load client: %w", err)
	}
	pref, err := uc.repo.GetClientPreference(ctx, clientID)
	if err != nil {
		return fmt.Errorf("load client preferences: %w", err)
	}
	data.ClientName = client.FullName()

	if settings.ClientSMSEnabled && pref.SMSAllowed() && client.Phone != "" {
		uc.remindViaSMS(ctx, settings, d, client, data, result)
	}
	if d.NotifyClient && client.Email != "" && pref.EmailAllowed() {
		uc.remindViaClientEmail(ctx, settings, d, client, data, result)
	}
	return nil
}

func (uc *implUseCase) remindViaSMS(ctx context.Context, settings model.ReminderSettings, d model.Dossier, client model.Client, data templateData, result *reminder.CycleResult) {
	attempt := model.ReminderAttempt{
		DossierID: d.ID,
		Channel:   model.ChannelClientSMS,
		Recipient: client.Phone,
	}
	fail := func(err error) {
		attempt.Outcome = model.OutcomeFailed
		attempt.FailureDetail = redact.Error(err)
		uc.recordAttempt(ctx, result, attempt)
	}

	to, err := phone.Normalize(client.Phone, uc.cfg.PhoneRegion)
	if err != nil {
		fail(err)
		return
	}
	attempt.Recipient = to

	body, err := render("client_sms", settings.Templates.ClientSMS, data)
	if err != nil {
		fail(err)
		return
	}
	attempt.Message = body

	if uc.sms == nil {
		fail(fmt.Errorf("%w: sms transport is not configured", reminder.ErrConfiguration))
		return
	}

	receipt, err := uc.sms.Send(ctx, to, body)
	if err != nil {
		uc.l.Warnf(ctx, "reminder.usecase.remindViaSMS: dossier %s: %v", d.ID, err)
		fail(err)
		return
	}

	attempt.Outcome = smsOutcome(receipt.Status)
	attempt.ExternalRef = receipt.MessageID
	if attempt.Outcome == model.OutcomeFailed {
		attempt.FailureDetail = "gateway reported status " + receipt.Status
	}
	uc.recordAttempt(ctx, result, attempt)
}

func (uc *implUseCase) remindViaClientEmail(ctx context.Context, settings model.ReminderSettings, d model.Dossier, client model.Client, data templateData, result *reminder.CycleResult) {
	attempt := model.ReminderAttempt{
		DossierID: d.ID,
		Channel:   model.ChannelClientEmail,
		Recipient: client.Email,
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

	subject, body, err := renderEmail("client_email", settings.Subjects.ClientEmail, settings.Templates.ClientEmail, data)
	if err != nil {
		fail(err)
		return
	}
	attempt.Message = body

	receipt, err := uc.mailer.Send(ctx, email.Message{
		From:    settings.SenderEmail,
		To:      client.Email,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		uc.l.Warnf(ctx, "reminder.usecase.remindViaClientEmail: dossier %s: %v", d.ID, err)
		fail(err)
		return
	}

	attempt.Outcome = model.OutcomeSent
	attempt.ExternalRef = receipt.ID
	uc.recordAttempt(ctx, result, attempt)
}
