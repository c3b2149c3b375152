package postgre

import (
	"context"

	"followup-srv/internal/audit/repository"
	"followup-srv/internal/model"
)

// CreateAttempt - Append one ledger row.
func (r *implRepository) CreateAttempt(ctx context.Context, opts repository.CreateAttemptOptions) (model.ReminderAttempt, error) {
	if _, err := r.db.NamedExecContext(ctx, insertAttemptQuery, opts.Attempt); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.CreateAttempt: Failed to insert attempt: %v", err)
		return model.ReminderAttempt{}, repository.ErrAttemptCreateFailed
	}
	return opts.Attempt, nil
}

// ListAttempts - Ledger rows of a dossier, newest first.
func (r *implRepository) ListAttempts(ctx context.Context, opts repository.ListAttemptsOptions) ([]model.ReminderAttempt, error) {
	query, args := buildListAttemptsQuery(opts)

	attempts := []model.ReminderAttempt{}
	if err := r.db.SelectContext(ctx, &attempts, query, args...); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ListAttempts: Failed to select attempts: %v", err)
		return nil, repository.ErrAttemptListFailed
	}
	return attempts, nil
}

// CountAttempts - Number of ledger rows matching the list filter.
func (r *implRepository) CountAttempts(ctx context.Context, opts repository.ListAttemptsOptions) (int64, error) {
	query, args := buildCountAttemptsQuery(opts)

	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.CountAttempts: Failed to count attempts: %v", err)
		return 0, repository.ErrAttemptListFailed
	}
	return total, nil
}

// HasAttempt - Whether the dossier already has an entry on the channel.
func (r *implRepository) HasAttempt(ctx context.Context, opts repository.HasAttemptOptions) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, hasAttemptQuery, opts.DossierID, opts.Channel); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.HasAttempt: Failed to query attempts: %v", err)
		return false, repository.ErrAttemptListFailed
	}
	return exists, nil
}
