package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"followup-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the subset of pkg/redis.IRedis the lock uses.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeRedis) DeleteIfEquals(_ context.Context, key, value string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data[key] != value {
		return false, nil
	}
	delete(f.data, key)
	return true, nil
}

func (f *fakeRedis) Close() error { return nil }
func (f *fakeRedis) Ping(_ context.Context) error { return nil }

func TestSiteLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire waits for release", func(t *testing.T) {
		r := newFakeRedis()
		lock := New(r, time.Minute, log.NewNop())

		release, ok, err := lock.Acquire(ctx, "site-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, time.Minute, r.ttls[keyPrefix+"site-1"])

		_, ok, err = lock.Acquire(ctx, "site-1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = lock.Acquire(ctx, "site-2")
		require.NoError(t, err)
		assert.True(t, ok)

		release()
		_, ok, err = lock.Acquire(ctx, "site-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release never deletes a lock taken over by another holder", func(t *testing.T) {
		r := newFakeRedis()
		lock := New(r, 0, log.NewNop())

		release, ok, err := lock.Acquire(ctx, "site-1")
		require.NoError(t, err)
		require.True(t, ok)

		// Simulate expiry and a new holder.
		r.data[keyPrefix+"site-1"] = "someone-else"
		release()
		assert.Equal(t, "someone-else", r.data[keyPrefix+"site-1"])
	})

	t.Run("redis error", func(t *testing.T) {
		r := newFakeRedis()
		r.err = errors.New("connection refused")
		_, ok, err := New(r, time.Minute, log.NewNop()).Acquire(ctx, "site-1")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
