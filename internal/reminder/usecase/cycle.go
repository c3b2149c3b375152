package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/redact"
)

// RunCycle loads settings and the awaiting dossiers once, then processes each
// dossier in fetch order. Failures inside a dossier are isolated to it.
func (uc *implUseCase) RunCycle(ctx context.Context) (reminder.CycleResult, error) {
	result := reminder.CycleResult{Errors: []string{}}

	settings, err := uc.loadSettings(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.RunCycle: Failed to load settings: %v", err)
		return result, err
	}

	dossiers, err := uc.repo.ListAwaitingDossiers(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.RunCycle: Failed to list dossiers: %v", err)
		return result, fmt.Errorf("%w: %w", reminder.ErrDossierList, err)
	}

	uc.l.Infof(ctx, "reminder.usecase.RunCycle: %d dossier(s) awaiting an expert report", len(dossiers))
	for _, d := range dossiers {
		result.Processed++
		uc.processDossier(ctx, settings, d, &result)
	}

	uc.l.Infof(ctx, "reminder.usecase.RunCycle: done processed=%d sent=%d stopped=%d skipped=%d errors=%d",
		result.Processed, result.TotalSent(), result.Stopped, result.Skipped, len(result.Errors))
	return result, nil
}

func (uc *implUseCase) loadSettings(ctx context.Context) (model.ReminderSettings, error) {
	kv, err := uc.repo.LoadSettings(ctx)
	if err != nil {
		return model.ReminderSettings{}, fmt.Errorf("%w: %w", reminder.ErrSettingsLoad, err)
	}
	return model.ParseReminderSettings(kv), nil
}

// processDossier runs one dossier under its own deadline and turns any error or
// panic into a result entry.
func (uc *implUseCase) processDossier(ctx context.Context, settings model.ReminderSettings, d model.Dossier, result *reminder.CycleResult) {
	dctx, cancel := context.WithTimeout(ctx, uc.cfg.DossierTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "reminder.usecase.processDossier: panic on dossier %s: %v\n%s", d.ID, r, debug.Stack())
			result.AddError(dossierRef(d), redact.String(fmt.Sprint(r)))
		}
	}()

	if err := uc.handleDossier(dctx, settings, d, result); err != nil {
		uc.l.Errorf(ctx, "reminder.usecase.processDossier: dossier %s: %v", d.ID, err)
		result.AddError(dossierRef(d), redact.Error(err))
	}
}

func (uc *implUseCase) handleDossier(ctx context.Context, settings model.ReminderSettings, d model.Dossier, result *reminder.CycleResult) error {
	decision, err := uc.checkStop(ctx, d)
	if err != nil {
		return err
	}
	if decision.Stop {
		result.Stopped++
		return nil
	}

	days := d.DaysSinceAnchor(uc.now())
	if days < settings.MinDaysBetweenReminders {
		result.Skipped++
		return nil
	}

	data := uc.templateData(ctx, d, days)
	uc.remindExpert(ctx, settings, d, data, result)
	return uc.remindClient(ctx, settings, d, data, result)
}

// templateData collects the fields shared by every template of a dossier. A
// missing vehicle leaves Plate empty.
func (uc *implUseCase) templateData(ctx context.Context, d model.Dossier, days int) templateData {
	data := templateData{
		DossierRef:  dossierRef(d),
		ClaimNumber: d.ClaimNumber,
		DaysWaited:  days,
		ExpertName:  d.ExpertName,
	}
	if id := deref(d.VehicleID); id != "" {
		v, err := uc.repo.GetVehicle(ctx, id)
		switch {
		case err == nil:
			data.Plate = v.SearchKey()
		case !errors.Is(err, repository.ErrNotFound):
			uc.l.Warnf(ctx, "reminder.usecase.templateData: Failed to load vehicle %s: %v", id, err)
		}
	}
	return data
}
