package redis

import (
	"time"

	"followup-srv/internal/reminder"
	"followup-srv/pkg/log"
	pkgRedis "followup-srv/pkg/redis"
)

const (
	keyPrefix      = "followup:portal-lock:"
	defaultLockTTL = 5 * time.Minute
)

type implSiteLock struct {
	redis pkgRedis.IRedis
	ttl   time.Duration
	l     log.Logger
}

// New creates a Redis-backed per-site portal lock. ttl bounds how long a crashed
// holder can keep a site locked.
func New(redis pkgRedis.IRedis, ttl time.Duration, l log.Logger) reminder.SiteLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &implSiteLock{
		redis: redis,
		ttl:   ttl,
		l:     l,
	}
}
