package redislock

import (
	"context"
	"time"

	"cardshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseIfOwner deletes the key only while it still carries our token, so
// a lock that expired and was re-acquired elsewhere is left alone.
const releaseIfOwner = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`

type Locker struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewLocker(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Locker {
	return &Locker{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

// TryLock sets the key with a TTL if it is free. acquired is false when
// another holder owns it; unlock is nil in that case.
func (l *Locker) TryLock(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, errs.Wrapf(err, "failed to acquire lock %s", fullKey)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		if err := l.rdb.Eval(ctx, releaseIfOwner, []string{fullKey}, token).Err(); err != nil {
			return errs.Wrapf(err, "failed to release lock %s", fullKey)
		}
		return nil
	}
	return unlock, true, nil
}
