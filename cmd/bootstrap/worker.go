package bootstrap

import (
	"context"
	"log/slog"

	"cardshop/internal/pkg/config"
	"cardshop/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewHandlers,
	),
	fx.Invoke(StartWorker),
)

// StartWorker runs the maintenance scheduler in-process. Deployments with
// several API replicas enable it on one of them only.
func StartWorker(lc fx.Lifecycle, cfg config.Config, h *worker.Handlers) error {
	if !cfg.Worker.Enabled {
		slog.Info("maintenance worker disabled")
		return nil
	}

	runner, err := worker.NewRunner(cfg.Redis, cfg.Worker, h)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return runner.Start()
		},
		OnStop: func(_ context.Context) error {
			runner.Stop()
			return nil
		},
	})
	return nil
}
