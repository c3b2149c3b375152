package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"followup-srv/internal/audit"
	"followup-srv/internal/audit/repository"
	"followup-srv/internal/model"
	"followup-srv/pkg/paginator"
	"followup-srv/pkg/redact"
)

// Record validates, sanitizes and appends one attempt, then publishes it.
// The event is best effort: a broker failure never fails the call.
func (uc *implUseCase) Record(ctx context.Context, attempt model.ReminderAttempt) error {
	if err := validateAttempt(attempt); err != nil {
		uc.l.Errorf(ctx, "audit.usecase.Record: invalid attempt for dossier %s: %v", attempt.DossierID, err)
		return err
	}

	attempt = uc.sanitize(attempt)

	saved, err := uc.repo.CreateAttempt(ctx, repository.CreateAttemptOptions{Attempt: attempt})
	if err != nil {
		uc.l.Errorf(ctx, "audit.usecase.Record: Failed to persist %s/%s attempt for dossier %s: %v",
			attempt.Channel, attempt.Outcome, attempt.DossierID, err)
		return audit.ErrPersistFailed
	}

	if uc.producer != nil {
		if err := uc.producer.PublishAttemptRecorded(ctx, saved); err != nil {
			uc.l.Warnf(ctx, "audit.usecase.Record: Failed to publish attempt %s: %v", saved.ID, err)
		}
	}
	return nil
}

func (uc *implUseCase) HasAttempt(ctx context.Context, dossierID string, channel model.Channel) (bool, error) {
	if strings.TrimSpace(dossierID) == "" {
		return false, audit.ErrDossierRequired
	}
	if !channel.Valid() {
		return false, audit.ErrInvalidChannel
	}
	ok, err := uc.repo.HasAttempt(ctx, repository.HasAttemptOptions{DossierID: dossierID, Channel: channel})
	if err != nil {
		uc.l.Errorf(ctx, "audit.usecase.HasAttempt: Failed to check ledger for dossier %s: %v", dossierID, err)
		return false, audit.ErrListFailed
	}
	return ok, nil
}

// List returns one page of the ledger of a dossier, newest first.
func (uc *implUseCase) List(ctx context.Context, input audit.ListInput) (audit.ListOutput, error) {
	if strings.TrimSpace(input.DossierID) == "" {
		return audit.ListOutput{}, audit.ErrDossierRequired
	}
	if input.Channel != "" && !input.Channel.Valid() {
		return audit.ListOutput{}, audit.ErrInvalidChannel
	}

	page := input.Paginate
	page.Adjust()
	opts := repository.ListAttemptsOptions{
		DossierID: input.DossierID,
		Channel:   input.Channel,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	}

	total, err := uc.repo.CountAttempts(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "audit.usecase.List: Failed to count attempts for dossier %s: %v", input.DossierID, err)
		return audit.ListOutput{}, audit.ErrListFailed
	}

	attempts, err := uc.repo.ListAttempts(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "audit.usecase.List: Failed to list attempts for dossier %s: %v", input.DossierID, err)
		return audit.ListOutput{}, audit.ErrListFailed
	}

	return audit.ListOutput{
		Attempts:  attempts,
		Paginator: paginator.New(page, total, len(attempts)),
	}, nil
}

func (uc *implUseCase) sanitize(a model.ReminderAttempt) model.ReminderAttempt {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = uc.now().UTC()
	}
	a.Message = redact.String(a.Message)
	a.FailureDetail = redact.String(a.FailureDetail)
	a.ExternalRef = redact.String(a.ExternalRef)
	return a
}

func validateAttempt(a model.ReminderAttempt) error {
	switch {
	case strings.TrimSpace(a.DossierID) == "":
		return audit.ErrDossierRequired
	case a.Channel == "":
		return audit.ErrChannelRequired
	case !a.Channel.Valid():
		return audit.ErrInvalidChannel
	case !a.Outcome.Valid():
		return audit.ErrOutcomeRequired
	}
	return nil
}
