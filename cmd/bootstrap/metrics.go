package bootstrap

import (
	"cardshop/internal/infra/metrics"
	"cardshop/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.NewRecorder,
		func(r *metrics.Recorder) commands.Metrics { return r },
	),
)
