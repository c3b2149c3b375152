package memory

import (
	"context"
	"sync"

	"followup-srv/internal/reminder"
)

type implSiteLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewSiteLock is the single-process portal lock.
func NewSiteLock() reminder.SiteLock {
	return &implSiteLock{held: map[string]bool{}}
}

func (s *implSiteLock) Acquire(_ context.Context, siteID string) (func(), bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[siteID] {
		return nil, false, nil
	}
	s.held[siteID] = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.held, siteID)
			s.mu.Unlock()
		})
	}, true, nil
}
