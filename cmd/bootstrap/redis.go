package bootstrap

import (
	"context"
	"log/slog"

	"cardshop/internal/infra/redislock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const eventLockPrefix = "cardshop:payment_event:"

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(
			NewEventLocker,
			fx.As(new(commands.EventLocker)),
		),
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) redis.UniversalClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The event lock degrades to the database claim when Redis is
			// down, so an unreachable Redis is not fatal.
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable at startup", "addr", cfg.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return errs.Wrap(rdb.Close(), "failed to close redis client")
		},
	})

	return rdb
}

func NewEventLocker(rdb redis.UniversalClient, cfg config.PaymentConfig) *redislock.Locker {
	return redislock.NewLocker(rdb, eventLockPrefix, cfg.EventLockTTL)
}
