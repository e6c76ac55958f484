package worker

import (
	"context"
	"log/slog"
	"time"

	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"

	"github.com/hibiken/asynq"
)

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type periodic struct {
	spec     string
	taskType string
	timeout  time.Duration
}

func schedule(cfg config.WorkerConfig) []periodic {
	return []periodic{
		{spec: cfg.SweepSpec, taskType: TaskSweepReservations, timeout: 30 * time.Second},
		{spec: cfg.PurgeSpec, taskType: TaskPurgeReservations, timeout: 5 * time.Minute},
		{spec: cfg.PruneEventsSpec, taskType: TaskPruneEvents, timeout: 5 * time.Minute},
		{spec: cfg.RelaySpec, taskType: TaskRelayNotification, timeout: time.Minute},
	}
}

// Runner owns the asynq server processing maintenance tasks and the
// scheduler enqueuing them.
type Runner struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewRunner(redisCfg config.RedisConfig, cfg config.WorkerConfig, h *Handlers) (*Runner, error) {
	opt := RedisOpt(redisCfg)

	onError := asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
		slog.Error("maintenance task failed", "task", task.Type(), "error", err.Error())
	})
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency:  cfg.Concurrency,
		Queues:       map[string]int{queueMaintenance: 1},
		ErrorHandler: onError,
	})

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC})
	for _, p := range schedule(cfg) {
		// Unique keeps a slow run from stacking up copies of itself.
		_, err := scheduler.Register(p.spec, asynq.NewTask(p.taskType, nil),
			asynq.Queue(queueMaintenance),
			asynq.MaxRetry(0),
			asynq.Timeout(p.timeout),
			asynq.Unique(p.timeout),
		)
		if err != nil {
			return nil, errs.Wrapf(err, "failed to register %s", p.taskType)
		}
	}

	return &Runner{server: server, scheduler: scheduler, mux: NewServeMux(h)}, nil
}

func (r *Runner) Start() error {
	if err := r.server.Start(r.mux); err != nil {
		return errs.Wrap(err, "failed to start task server")
	}
	if err := r.scheduler.Start(); err != nil {
		r.server.Shutdown()
		return errs.Wrap(err, "failed to start task scheduler")
	}
	slog.Info("maintenance worker started")
	return nil
}

func (r *Runner) Stop() {
	r.scheduler.Shutdown()
	r.server.Shutdown()
	slog.Info("maintenance worker stopped")
}
