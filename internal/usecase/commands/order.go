package commands

import (
	"context"
	"log/slog"

	"cardshop/internal/domain/order"
	"cardshop/internal/infra"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errs.New("order not found")
	ErrOrderStatusConflict = errs.New("order was modified concurrently")
)

type RefundOutcome struct {
	Order         *order.Order
	Full          bool
	AmountCents   int64
	RestoredStock bool
}

type OrderCommands interface {
	MarkPaid(ctx context.Context, id uuid.UUID) (*order.Order, error)
	MarkFulfilled(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// Refund refunds amount (major units, e.g. "12.50"), or the whole order
	// when amount is nil.
	Refund(ctx context.Context, id uuid.UUID, amount *string) (*RefundOutcome, error)
}

type orderUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics Metrics
	topics  config.KafkaConfig
	clock   clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, metrics Metrics, topics config.KafkaConfig, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{uow: uow, metrics: metrics, topics: topics, clock: clk}
}

func (uc *orderUseCaseImpl) MarkPaid(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return uc.transition(ctx, id, order.StatusPaid)
}

func (uc *orderUseCaseImpl) MarkFulfilled(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return uc.transition(ctx, id, order.StatusFulfilled)
}

func (uc *orderUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return uc.transition(ctx, id, order.StatusCancelled)
}

func (uc *orderUseCaseImpl) transition(ctx context.Context, id uuid.UUID, to order.Status) (*order.Order, error) {
	var updated *order.Order
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		o, err := uc.load(ctx, tx, id)
		if err != nil {
			return err
		}
		expectedStatus, expectedRefunded := o.Status(), o.RefundedCents()

		change, err := o.Transition(to, now)
		if err != nil {
			return err
		}
		if err := uc.save(ctx, tx, o, expectedStatus, expectedRefunded); err != nil {
			return err
		}
		if err := applyInventory(ctx, tx, o, change); err != nil {
			return err
		}
		if to == order.StatusFulfilled {
			if err := enqueueOrderNotice(ctx, tx, noticeOrderShipped, uc.topics.OrderShipped, o, now); err != nil {
				return err
			}
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.OrderTransitioned(to.String())
	slog.Info("order transitioned", "order_id", id.String(), "status", to.String())
	return updated, nil
}

func (uc *orderUseCaseImpl) Refund(ctx context.Context, id uuid.UUID, amount *string) (*RefundOutcome, error) {
	var amountCents *int64
	if amount != nil {
		cents, err := order.ParseAmount(*amount)
		if err != nil {
			return nil, err
		}
		amountCents = &cents
	}

	var outcome *RefundOutcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := uc.load(ctx, tx, id)
		if err != nil {
			return err
		}
		expectedStatus, expectedRefunded := o.Status(), o.RefundedCents()

		result, err := o.Refund(amountCents, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := uc.save(ctx, tx, o, expectedStatus, expectedRefunded); err != nil {
			return err
		}
		if err := applyInventory(ctx, tx, o, result.Change); err != nil {
			return err
		}
		outcome = &RefundOutcome{
			Order:         o,
			Full:          result.Full,
			AmountCents:   result.AmountCents,
			RestoredStock: result.RestoreInventory,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Full {
		uc.metrics.OrderTransitioned(order.StatusRefunded.String())
	}
	slog.Info("order refunded",
		"order_id", id.String(),
		"amount", order.FormatAmount(outcome.AmountCents),
		"full", outcome.Full)
	return outcome, nil
}

func (uc *orderUseCaseImpl) load(ctx context.Context, tx shared.Tx, id uuid.UUID) (*order.Order, error) {
	o, err := tx.Reads().OrderByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// save writes o only if nobody changed it since load, so the inventory side
// effect of a transition is applied at most once.
func (uc *orderUseCaseImpl) save(ctx context.Context, tx shared.Tx, o *order.Order, expectedStatus order.Status, expectedRefunded int64) error {
	ok, err := tx.Orders().UpdateStatus(ctx, tx.DB(), o, expectedStatus, expectedRefunded)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderStatusConflict
	}
	return nil
}

func applyInventory(ctx context.Context, tx shared.Tx, o *order.Order, change order.Change) error {
	now := o.UpdatedAt()
	switch {
	case change.CommitInventory:
		return commitInventory(ctx, tx, o.Items(), now)
	case change.RestoreInventory:
		return restoreInventory(ctx, tx, o.Items(), now)
	default:
		return nil
	}
}
