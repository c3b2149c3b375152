package postgre

import (
	"context"
	"database/sql"
	"errors"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
)

// GetClient - Client by primary key.
func (r *implRepository) GetClient(ctx context.Context, id string) (model.Client, error) {
	var c model.Client
	err := r.db.GetContext(ctx, &c, getClientQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.GetClient: Failed to get client: %v", err)
		return model.Client{}, repository.ErrQueryFailed
	}
	return c, nil
}

// GetClientPreference - Channel opt-outs; nil when none were recorded.
func (r *implRepository) GetClientPreference(ctx context.Context, clientID string) (*model.ClientPreference, error) {
	var p model.ClientPreference
	err := r.db.GetContext(ctx, &p, getClientPreferenceQuery, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.GetClientPreference: Failed to get preference: %v", err)
		return nil, repository.ErrQueryFailed
	}
	return &p, nil
}

// GetVehicle - Vehicle by primary key.
func (r *implRepository) GetVehicle(ctx context.Context, id string) (model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.GetContext(ctx, &v, getVehicleQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vehicle{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.GetVehicle: Failed to get vehicle: %v", err)
		return model.Vehicle{}, repository.ErrQueryFailed
	}
	return v, nil
}
