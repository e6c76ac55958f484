package bootstrap

import (
	"cardshop/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes each section on its own so constructors can depend
// on only the part they read. Tests pair it with a hand-built config.Config.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.CheckoutConfig { return cfg.Checkout },
	func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	func(cfg config.Config) config.KafkaConfig { return cfg.Kafka },
	func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
	func(cfg config.Config) config.RedisConfig { return cfg.Redis },
)
