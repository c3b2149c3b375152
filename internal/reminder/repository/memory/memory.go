// Package memory is the in-process store selected by store.driver "memory".
// It backs local runs without Postgres and the usecase tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
)

// Repository is the in-memory store plus seeding helpers.
type Repository interface {
	repository.PostgresRepository

	PutDossier(d model.Dossier)
	PutClient(c model.Client)
	PutClientPreference(p model.ClientPreference)
	PutVehicle(v model.Vehicle)
	PutSiteProfile(p model.SiteProfile)
	PutDocument(d model.Document)
	PutSetting(key, value string)
	// FailOn makes the named operation return err until cleared with a nil err.
	FailOn(op string, err error)
}

// Operation names accepted by FailOn.
const (
	OpListAwaitingDossiers = "ListAwaitingDossiers"
	OpMarkReportReceived   = "MarkReportReceived"
	OpMarkExpertReminded   = "MarkExpertReminded"
	OpLoadSettings         = "LoadSettings"
	OpListStopDocuments    = "ListStopDocuments"
	OpGetClient            = "GetClient"
)

type implRepository struct {
	mu        sync.RWMutex
	dossiers  map[string]model.Dossier
	order     []string
	clients   map[string]model.Client
	prefs     map[string]model.ClientPreference
	vehicles  map[string]model.Vehicle
	profiles  map[string]model.SiteProfile
	documents []model.Document
	settings  map[string]string
	failures  map[string]error
}

func New() Repository {
	return &implRepository{
		dossiers: map[string]model.Dossier{},
		clients:  map[string]model.Client{},
		prefs:    map[string]model.ClientPreference{},
		vehicles: map[string]model.Vehicle{},
		profiles: map[string]model.SiteProfile{},
		settings: map[string]string{},
		failures: map[string]error{},
	}
}

func (r *implRepository) fail(op string) error {
	if err, ok := r.failures[op]; ok {
		return err
	}
	return nil
}

func (r *implRepository) FailOn(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, op)
		return
	}
	r.failures[op] = err
}

func (r *implRepository) PutDossier(d model.Dossier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dossiers[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.dossiers[d.ID] = d
}

func (r *implRepository) PutClient(c model.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
}

func (r *implRepository) PutClientPreference(p model.ClientPreference) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[p.ClientID] = p
}

func (r *implRepository) PutVehicle(v model.Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[v.ID] = v
}

func (r *implRepository) PutSiteProfile(p model.SiteProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

func (r *implRepository) PutDocument(d model.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.documents = append(r.documents, d)
}

func (r *implRepository) PutSetting(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[key] = value
}

func (r *implRepository) ListAwaitingDossiers(_ context.Context) ([]model.Dossier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(OpListAwaitingDossiers); err != nil {
		return nil, errors.Join(repository.ErrDossierListFailed, err)
	}

	out := []model.Dossier{}
	for _, id := range r.order {
		d := r.dossiers[id]
		if d.Status.AwaitingReport() && d.ReportReceivedAt == nil {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *implRepository) GetDossier(_ context.Context, id string) (model.Dossier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dossiers[id]
	if !ok {
		return model.Dossier{}, repository.ErrNotFound
	}
	return d, nil
}

func (r *implRepository) MarkReportReceived(_ context.Context, opts repository.MarkReportReceivedOptions) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(OpMarkReportReceived); err != nil {
		return false, errors.Join(repository.ErrDossierUpdateFailed, err)
	}
	d, ok := r.dossiers[opts.DossierID]
	if !ok || d.ReportReceivedAt != nil {
		return false, nil
	}
	at := opts.At
	d.ReportReceivedAt = &at
	if d.Status.AwaitingReport() {
		d.Status = model.DossierStatusReportReceived
	}
	r.dossiers[d.ID] = d
	return true, nil
}

func (r *implRepository) MarkExpertReminded(_ context.Context, opts repository.MarkExpertRemindedOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail(OpMarkExpertReminded); err != nil {
		return errors.Join(repository.ErrDossierUpdateFailed, err)
	}
	d, ok := r.dossiers[opts.DossierID]
	if !ok || d.ReportReceivedAt != nil || !d.Status.AwaitingReport() {
		return nil
	}
	at := opts.At
	d.Status = model.DossierStatusExpertReminded
	d.LastExpertReminderAt = &at
	r.dossiers[d.ID] = d
	return nil
}

func (r *implRepository) ListStopDocuments(_ context.Context, dossierID string) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(OpListStopDocuments); err != nil {
		return nil, errors.Join(repository.ErrDocumentListFailed, err)
	}
	out := []model.Document{}
	for _, d := range r.documents {
		if d.DossierID == dossierID && d.Type.StopsReminders() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *implRepository) CreateDocument(_ context.Context, opts repository.CreateDocumentOptions) (model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := model.Document{
		ID:         opts.ID,
		DossierID:  opts.DossierID,
		Type:       opts.Type,
		StorageKey: opts.StorageKey,
		CreatedAt:  opts.CreatedAt,
	}
	r.documents = append(r.documents, doc)
	return doc, nil
}

func (r *implRepository) GetClient(_ context.Context, id string) (model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(OpGetClient); err != nil {
		return model.Client{}, errors.Join(repository.ErrQueryFailed, err)
	}
	c, ok := r.clients[id]
	if !ok {
		return model.Client{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *implRepository) GetClientPreference(_ context.Context, clientID string) (*model.ClientPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefs[clientID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *implRepository) GetVehicle(_ context.Context, id string) (model.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vehicles[id]
	if !ok {
		return model.Vehicle{}, repository.ErrNotFound
	}
	return v, nil
}

func (r *implRepository) GetSiteProfile(_ context.Context, id string) (model.SiteProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return model.SiteProfile{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *implRepository) LoadSettings(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(OpLoadSettings); err != nil {
		return nil, errors.Join(repository.ErrSettingsLoadFailed, err)
	}
	out := make(map[string]string, len(r.settings))
	for k, v := range r.settings {
		out[k] = v
	}
	return out, nil
}
