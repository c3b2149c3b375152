package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
)

type siteProfileRow struct {
	ID                   string         `db:"id"`
	Name                 string         `db:"name"`
	SearchURL            string         `db:"search_url"`
	AuthMode             string         `db:"auth_mode"`
	CredentialsEncrypted sql.NullString `db:"credentials_encrypted"`
	Selectors            []byte         `db:"selectors"`
	Active               bool           `db:"active"`
}

// GetSiteProfile - Profile with selectors parsed and credentials opened.
func (r *implRepository) GetSiteProfile(ctx context.Context, id string) (model.SiteProfile, error) {
	var row siteProfileRow
	err := r.db.GetContext(ctx, &row, getSiteProfileQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SiteProfile{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.GetSiteProfile: Failed to get profile: %v", err)
		return model.SiteProfile{}, repository.ErrQueryFailed
	}
	return r.toSiteProfile(ctx, row)
}

func (r *implRepository) toSiteProfile(ctx context.Context, row siteProfileRow) (model.SiteProfile, error) {
	p := model.SiteProfile{
		ID:          row.ID,
		Name:        row.Name,
		SearchURL:   row.SearchURL,
		AuthMode:    model.AuthMode(row.AuthMode),
		Active:      row.Active,
		Selectors:   model.SelectorMap{},
		Credentials: model.Credentials{},
	}

	if len(row.Selectors) > 0 {
		if err := json.Unmarshal(row.Selectors, &p.Selectors); err != nil {
			// A malformed map leaves the profile without selectors; the driver then
			// fails on the first missing key instead of the whole cycle failing here.
			r.l.Warnf(ctx, "reminder.repository.postgre.GetSiteProfile: invalid selectors for profile %s: %v", row.ID, err)
			p.Selectors = model.SelectorMap{}
		}
	}

	if row.CredentialsEncrypted.Valid && row.CredentialsEncrypted.String != "" {
		if err := r.enc.DecryptJSON(row.CredentialsEncrypted.String, &p.Credentials); err != nil {
			r.l.Errorf(ctx, "reminder.repository.postgre.GetSiteProfile: Failed to decrypt credentials for profile %s: %v", row.ID, err)
			return model.SiteProfile{}, repository.ErrCredentialsDecrypt
		}
	}
	return p, nil
}
