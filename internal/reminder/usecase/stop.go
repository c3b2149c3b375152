package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository"
)

func (uc *implUseCase) ShouldStop(ctx context.Context, dossierID string) (reminder.StopDecision, error) {
	if strings.TrimSpace(dossierID) == "" {
		return reminder.StopDecision{}, reminder.ErrDossierRequired
	}
	d, err := uc.repo.GetDossier(ctx, dossierID)
	if errors.Is(err, repository.ErrNotFound) {
		return reminder.StopDecision{}, reminder.ErrDossierNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.ShouldStop: Failed to load dossier %s: %v", dossierID, err)
		return reminder.StopDecision{}, err
	}
	return uc.checkStop(ctx, d)
}

// checkStop evaluates and, on stop, applies the transition.
func (uc *implUseCase) checkStop(ctx context.Context, d model.Dossier) (reminder.StopDecision, error) {
	decision, err := uc.evaluateStop(ctx, d)
	if err != nil || !decision.Stop {
		return decision, err
	}
	uc.applyStop(ctx, d, decision)
	return decision, nil
}

// evaluateStop has no side effects. First match wins: a stopping document,
// then an advanced status, then a set report timestamp.
func (uc *implUseCase) evaluateStop(ctx context.Context, d model.Dossier) (reminder.StopDecision, error) {
	docs, err := uc.repo.ListStopDocuments(ctx, d.ID)
	if err != nil {
		return reminder.StopDecision{}, fmt.Errorf("evaluate stop conditions: %w", err)
	}
	if len(docs) > 0 {
		return reminder.StopDecision{Stop: true, Reason: reminder.ReasonArtifactReceived, ArtifactType: docs[0].Type}, nil
	}
	if d.Status.PastReport() {
		return reminder.StopDecision{Stop: true, Reason: reminder.ReasonStatusAdvanced}, nil
	}
	if d.ReportReceivedAt != nil {
		return reminder.StopDecision{Stop: true, Reason: reminder.ReasonReportTimestamp}, nil
	}
	return reminder.StopDecision{}, nil
}

// applyStop stamps the report time, advances an awaiting status and appends one
// system_stop entry. A dossier whose timestamp is already set is left alone. The
// ledger wins over the status write: when the write fails the stop entry is still
// appended once and the write is retried on the next evaluation.
func (uc *implUseCase) applyStop(ctx context.Context, d model.Dossier, decision reminder.StopDecision) {
	if d.ReportReceivedAt != nil {
		return
	}

	wctx, cancel := uc.writeContext(ctx)
	defer cancel()

	updated, err := uc.repo.MarkReportReceived(wctx, repository.MarkReportReceivedOptions{
		DossierID: d.ID,
		At:        uc.now().UTC(),
	})
	if err == nil && !updated {
		// A concurrent evaluation already made the transition.
		return
	}
	if err != nil {
		uc.l.Warnf(ctx, "reminder.usecase.applyStop: status write failed for dossier %s, stop still honored: %v", d.ID, err)
	}

	recorded, herr := uc.recorder.HasAttempt(wctx, d.ID, model.ChannelSystemStop)
	if herr != nil {
		uc.l.Warnf(ctx, "reminder.usecase.applyStop: Failed to read ledger for dossier %s: %v", d.ID, herr)
		if !updated {
			uc.l.Warnf(ctx, "reminder.usecase.applyStop: system_stop for dossier %s deferred to the next evaluation", d.ID)
			return
		}
	}
	if recorded {
		return
	}

	uc.recordAttempt(ctx, nil, model.ReminderAttempt{
		DossierID:    d.ID,
		Channel:      model.ChannelSystemStop,
		Message:      decision.Reason,
		Outcome:      model.OutcomeCancelled,
		ArtifactType: string(decision.ArtifactType),
	})
}
