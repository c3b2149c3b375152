package postgre

import (
	"context"
	"database/sql"
	"errors"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
)

// ListAwaitingDossiers - Dossiers still waiting on the expert, fetch order.
func (r *implRepository) ListAwaitingDossiers(ctx context.Context) ([]model.Dossier, error) {
	dossiers := []model.Dossier{}
	if err := r.db.SelectContext(ctx, &dossiers, listAwaitingDossiersQuery); err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.ListAwaitingDossiers: Failed to select dossiers: %v", err)
		return nil, repository.ErrDossierListFailed
	}
	return dossiers, nil
}

// GetDossier - Dossier by primary key.
func (r *implRepository) GetDossier(ctx context.Context, id string) (model.Dossier, error) {
	var d model.Dossier
	err := r.db.GetContext(ctx, &d, getDossierQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Dossier{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.GetDossier: Failed to get dossier %s: %v", id, err)
		return model.Dossier{}, repository.ErrQueryFailed
	}
	return d, nil
}

// MarkReportReceived - Conditional report-received transition.
func (r *implRepository) MarkReportReceived(ctx context.Context, opts repository.MarkReportReceivedOptions) (bool, error) {
	res, err := r.db.ExecContext(ctx, markReportReceivedQuery, opts.DossierID, opts.At)
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.MarkReportReceived: Failed to update dossier %s: %v", opts.DossierID, err)
		return false, repository.ErrDossierUpdateFailed
	}
	n, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.MarkReportReceived: Failed to read rows affected: %v", err)
		return false, repository.ErrDossierUpdateFailed
	}
	return n > 0, nil
}

// MarkExpertReminded - Forward-only expert_reminded transition.
func (r *implRepository) MarkExpertReminded(ctx context.Context, opts repository.MarkExpertRemindedOptions) error {
	if _, err := r.db.ExecContext(ctx, markExpertRemindedQuery, opts.DossierID, opts.At); err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.MarkExpertReminded: Failed to update dossier %s: %v", opts.DossierID, err)
		return repository.ErrDossierUpdateFailed
	}
	return nil
}
