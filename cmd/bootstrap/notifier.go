package bootstrap

import (
	"context"

	"cardshop/internal/infra/notifier"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewKafkaWriter,
		fx.Annotate(
			notifier.NewKafkaPublisher,
			fx.As(new(commands.Publisher)),
		),
	),
)

func NewKafkaWriter(lc fx.Lifecycle, cfg config.KafkaConfig) *kafka.Writer {
	w := notifier.NewKafkaWriter(cfg)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errs.Wrap(w.Close(), "failed to close kafka writer")
		},
	})

	return w
}
