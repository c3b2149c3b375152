package postgre

import (
	"context"

	"followup-srv/internal/reminder/repository"
)

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// LoadSettings - Raw key/value rows of reminder_settings.
func (r *implRepository) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows := []settingRow{}
	if err := r.db.SelectContext(ctx, &rows, loadSettingsQuery); err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.LoadSettings: Failed to select settings: %v", err)
		return nil, repository.ErrSettingsLoadFailed
	}
	kv := make(map[string]string, len(rows))
	for _, row := range rows {
		kv[row.Key] = row.Value
	}
	return kv, nil
}
