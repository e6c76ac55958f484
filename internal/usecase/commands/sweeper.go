package commands

import (
	"context"
	"log/slog"

	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/usecase/shared"
)

const (
	maintenanceSweep       = "sweep_expired"
	maintenancePurge       = "purge_reservations"
	maintenancePruneEvents = "prune_payment_events"
)

type SweeperCommands interface {
	// SweepExpired marks active holds past their expiry as expired.
	SweepExpired(ctx context.Context) (int64, error)
	// PurgeStale deletes reservations past their retention.
	PurgeStale(ctx context.Context) (int64, error)
	// PruneEvents drops idempotency records older than the event retention.
	PruneEvents(ctx context.Context) (int64, error)
}

type sweeperUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics Metrics
	cfg     config.CheckoutConfig
	clock   clock.Clock
}

func NewSweeperUseCase(uow shared.UnitOfWork, metrics Metrics, cfg config.CheckoutConfig, clk clock.Clock) SweeperCommands {
	return &sweeperUseCaseImpl{uow: uow, metrics: metrics, cfg: cfg, clock: clk}
}

func (uc *sweeperUseCaseImpl) SweepExpired(ctx context.Context) (int64, error) {
	return uc.run(ctx, maintenanceSweep, func(ctx context.Context, tx shared.Tx) (int64, error) {
		return tx.Reservations().ExpireDue(ctx, tx.DB(), uc.clock.Now())
	})
}

func (uc *sweeperUseCaseImpl) PurgeStale(ctx context.Context) (int64, error) {
	return uc.run(ctx, maintenancePurge, func(ctx context.Context, tx shared.Tx) (int64, error) {
		return tx.Reservations().Purge(ctx, tx.DB(), uc.clock.Now())
	})
}

func (uc *sweeperUseCaseImpl) PruneEvents(ctx context.Context) (int64, error) {
	return uc.run(ctx, maintenancePruneEvents, func(ctx context.Context, tx shared.Tx) (int64, error) {
		cutoff := uc.clock.Now().Add(-uc.cfg.EventRetention)
		return tx.PaymentEvents().DeleteBefore(ctx, tx.DB(), cutoff)
	})
}

func (uc *sweeperUseCaseImpl) run(ctx context.Context, task string, fn func(ctx context.Context, tx shared.Tx) (int64, error)) (int64, error) {
	var n int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.metrics.MaintenanceRows(task, n)
	if n > 0 {
		slog.Info("maintenance task finished", "task", task, "rows", n)
	}
	return n, nil
}
