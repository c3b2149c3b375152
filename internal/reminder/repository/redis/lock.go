package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Acquire - SET NX PX on the site key with a random token; release deletes the key
// only while it still carries that token.
func (s *implSiteLock) Acquire(ctx context.Context, siteID string) (func(), bool, error) {
	key := keyPrefix + siteID
	token := uuid.New().String()

	ok, err := s.redis.SetNX(ctx, key, token, s.ttl)
	if err != nil {
		s.l.Errorf(ctx, "reminder.repository.redis.Acquire: Failed to lock site %s: %v", siteID, err)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The caller's ctx may already be expired when the session ends.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if _, err := s.redis.DeleteIfEquals(rctx, key, token); err != nil {
			s.l.Warnf(rctx, "reminder.repository.redis.Release: Failed to unlock site %s: %v", siteID, err)
		}
	}
	return release, true, nil
}
