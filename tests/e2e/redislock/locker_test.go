//go:build e2e

package redislock_test

import (
	"context"
	"testing"
	"time"

	"cardshop/internal/infra/redislock"
	"cardshop/tests/e2e"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: e2e.StartRedis(t)})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return rdb
}

func TestLocker_TryLock(t *testing.T) {
	rdb := newClient(t)
	ctx := context.Background()
	prefix := "test:" + uuid.NewString() + ":"

	t.Run("second caller is refused while the lock is held", func(t *testing.T) {
		locker := redislock.NewLocker(rdb, prefix, 5*time.Second)

		unlock, acquired, err := locker.TryLock(ctx, "evt_1")
		require.NoError(t, err)
		require.True(t, acquired)
		require.NotNil(t, unlock)

		again, acquired, err := locker.TryLock(ctx, "evt_1")
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Nil(t, again)

		require.NoError(t, unlock(ctx))

		unlock, acquired, err = locker.TryLock(ctx, "evt_1")
		require.NoError(t, err)
		assert.True(t, acquired, "released lock can be taken again")
		require.NoError(t, unlock(ctx))
	})

	t.Run("keys are independent", func(t *testing.T) {
		locker := redislock.NewLocker(rdb, prefix, 5*time.Second)

		unlockA, acquired, err := locker.TryLock(ctx, "evt_a")
		require.NoError(t, err)
		require.True(t, acquired)

		unlockB, acquired, err := locker.TryLock(ctx, "evt_b")
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, unlockA(ctx))
		require.NoError(t, unlockB(ctx))
	})

	t.Run("lock lapses after its ttl", func(t *testing.T) {
		locker := redislock.NewLocker(rdb, prefix, 200*time.Millisecond)

		_, acquired, err := locker.TryLock(ctx, "evt_ttl")
		require.NoError(t, err)
		require.True(t, acquired)

		require.Eventually(t, func() bool {
			unlock, ok, err := locker.TryLock(ctx, "evt_ttl")
			if err != nil || !ok {
				return false
			}
			_ = unlock(ctx)
			return true
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("stale unlock does not release a newer owner", func(t *testing.T) {
		locker := redislock.NewLocker(rdb, prefix, 200*time.Millisecond)

		staleUnlock, acquired, err := locker.TryLock(ctx, "evt_owner")
		require.NoError(t, err)
		require.True(t, acquired)

		successor := redislock.NewLocker(rdb, prefix, 5*time.Second)
		var current func(context.Context) error
		require.Eventually(t, func() bool {
			unlock, ok, err := successor.TryLock(ctx, "evt_owner")
			if err != nil || !ok {
				return false
			}
			current = unlock
			return true
		}, 3*time.Second, 50*time.Millisecond)

		require.NoError(t, staleUnlock(ctx))

		exists, err := rdb.Exists(ctx, prefix+"evt_owner").Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, exists, "newer owner keeps the key")

		require.NoError(t, current(ctx))
	})

	t.Run("unreachable redis surfaces an error", func(t *testing.T) {
		dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
		t.Cleanup(func() { _ = dead.Close() })

		locker := redislock.NewLocker(dead, prefix, time.Second)
		unlock, acquired, err := locker.TryLock(ctx, "evt_dead")
		require.Error(t, err)
		assert.False(t, acquired)
		assert.Nil(t, unlock)
	})
}
