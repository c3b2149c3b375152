// Package memory is the in-process ledger used when store.driver is "memory"
// and by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"followup-srv/internal/audit/repository"
	"followup-srv/internal/model"
)

type implRepository struct {
	mu       sync.RWMutex
	attempts []model.ReminderAttempt
	failNext error
}

// Repository is the in-memory ledger. FailWith lets tests simulate a store outage.
type Repository interface {
	repository.PostgresRepository
	FailWith(err error)
	All() []model.ReminderAttempt
}

func New() Repository {
	return &implRepository{}
}

func (r *implRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

// All returns a copy of every entry in insertion order.
func (r *implRepository) All() []model.ReminderAttempt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.ReminderAttempt(nil), r.attempts...)
}

func (r *implRepository) CreateAttempt(_ context.Context, opts repository.CreateAttemptOptions) (model.ReminderAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		r.failNext = nil
		return model.ReminderAttempt{}, repository.ErrAttemptCreateFailed
	}
	for _, a := range r.attempts {
		if a.ID == opts.Attempt.ID {
			return model.ReminderAttempt{}, repository.ErrAttemptDuplicate
		}
	}
	r.attempts = append(r.attempts, opts.Attempt)
	return opts.Attempt, nil
}

func (r *implRepository) ListAttempts(_ context.Context, opts repository.ListAttemptsOptions) ([]model.ReminderAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filter(opts)
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []model.ReminderAttempt{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *implRepository) CountAttempts(_ context.Context, opts repository.ListAttemptsOptions) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filter(opts))), nil
}

// filter returns the matching entries newest first. Callers hold the lock.
func (r *implRepository) filter(opts repository.ListAttemptsOptions) []model.ReminderAttempt {
	// Walk backwards so equal timestamps stay newest-first after the stable sort.
	out := []model.ReminderAttempt{}
	for i := len(r.attempts) - 1; i >= 0; i-- {
		a := r.attempts[i]
		if a.DossierID != opts.DossierID {
			continue
		}
		if opts.Channel != "" && a.Channel != opts.Channel {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *implRepository) HasAttempt(_ context.Context, opts repository.HasAttemptOptions) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attempts {
		if a.DossierID == opts.DossierID && a.Channel == opts.Channel {
			return true, nil
		}
	}
	return false, nil
}
