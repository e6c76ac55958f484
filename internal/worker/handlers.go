package worker

import (
	"context"
	"log/slog"

	"cardshop/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

type Handlers struct {
	sweeper       commands.SweeperCommands
	notifications commands.NotificationCommands
}

func NewHandlers(sweeper commands.SweeperCommands, notifications commands.NotificationCommands) *Handlers {
	return &Handlers{sweeper: sweeper, notifications: notifications}
}

func (h *Handlers) SweepReservations(ctx context.Context, t *asynq.Task) error {
	n, err := h.sweeper.SweepExpired(ctx)
	if err != nil {
		return err
	}
	slog.Debug("reservation sweep done", "task", t.Type(), "expired", n)
	return nil
}

func (h *Handlers) PurgeReservations(ctx context.Context, t *asynq.Task) error {
	n, err := h.sweeper.PurgeStale(ctx)
	if err != nil {
		return err
	}
	slog.Debug("reservation purge done", "task", t.Type(), "deleted", n)
	return nil
}

func (h *Handlers) PruneEvents(ctx context.Context, t *asynq.Task) error {
	n, err := h.sweeper.PruneEvents(ctx)
	if err != nil {
		return err
	}
	slog.Debug("payment event prune done", "task", t.Type(), "deleted", n)
	return nil
}

func (h *Handlers) RelayNotifications(ctx context.Context, t *asynq.Task) error {
	n, err := h.notifications.RelayDue(ctx)
	if err != nil {
		return err
	}
	slog.Debug("notification relay done", "task", t.Type(), "sent", n)
	return nil
}

func NewServeMux(h *Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskSweepReservations, h.SweepReservations)
	mux.HandleFunc(TaskPurgeReservations, h.PurgeReservations)
	mux.HandleFunc(TaskPruneEvents, h.PruneEvents)
	mux.HandleFunc(TaskRelayNotification, h.RelayNotifications)
	return mux
}
