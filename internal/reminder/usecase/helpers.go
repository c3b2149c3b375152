package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
)

const contentTypePDF = "application/pdf"

// recordAttempt appends to the ledger and counts the outcome. A ledger failure is
// logged only: the outcome already happened and stays counted.
func (uc *implUseCase) recordAttempt(ctx context.Context, result *reminder.CycleResult, attempt model.ReminderAttempt) {
	if result != nil {
		result.Count(attempt.Channel, attempt.Outcome)
	}
	wctx, cancel := uc.writeContext(ctx)
	defer cancel()
	if err := uc.recorder.Record(wctx, attempt); err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.recordAttempt: %s/%s for dossier %s not recorded: %v",
			attempt.Channel, attempt.Outcome, attempt.DossierID, err)
	}
}

// writeContext detaches ledger and status writes from the dossier deadline. An
// outcome that already happened must still reach the store after a slow session.
func (uc *implUseCase) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), uc.cfg.WriteTimeout)
}

func dossierRef(d model.Dossier) string {
	if d.Reference != "" {
		return d.Reference
	}
	return d.ID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// reportObjectKey returns <prefix>/<dossier>/<uuid>.pdf.
func reportObjectKey(prefix, dossierID string) string {
	return fmt.Sprintf("%s/%s/%s.pdf", strings.Trim(prefix, "/"), dossierID, uuid.New().String())
}

func reportContentType(contentType string) string {
	if contentType == "" {
		return contentTypePDF
	}
	return contentType
}

// smsOutcome maps a gateway state onto the ledger outcome.
func smsOutcome(status string) model.Outcome {
	switch strings.ToLower(status) {
	case "delivered":
		return model.OutcomeDelivered
	case "read":
		return model.OutcomeRead
	case "failed", "rejected", "undelivered":
		return model.OutcomeFailed
	}
	return model.OutcomeSent
}
