package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"cardshop/internal/domain/order"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"
)

const (
	noticeOrderMaterialized = "order.materialized"
	noticeOrderShipped      = "order.shipped"
)

const (
	relayBaseBackoff = 30 * time.Second
	relayMaxBackoff  = 30 * time.Minute
)

// OrderNotice is the message body collaborators receive for order triggers.
type OrderNotice struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func enqueueOrderNotice(ctx context.Context, tx shared.Tx, kind, topic string, o *order.Order, now time.Time) error {
	payload, err := json.Marshal(OrderNotice{
		Kind:        kind,
		OrderID:     o.ID().String(),
		OrderNumber: o.FormattedNumber(),
		Email:       o.Email(),
		Status:      o.Status().String(),
		TotalCents:  o.Amounts().TotalCents,
		Currency:    o.Currency(),
		OccurredAt:  now,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode order notice")
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), kind, topic, payload, now)
}

type NotificationCommands interface {
	// RelayDue publishes queued notification jobs and returns how many were
	// delivered.
	RelayDue(ctx context.Context) (int, error)
}

type notificationUseCaseImpl struct {
	uow       shared.UnitOfWork
	publisher Publisher
	metrics   Metrics
	cfg       config.WorkerConfig
	clock     clock.Clock
}

func NewNotificationUseCase(uow shared.UnitOfWork, publisher Publisher, metrics Metrics, cfg config.WorkerConfig, clk clock.Clock) NotificationCommands {
	return &notificationUseCaseImpl{
		uow:       uow,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		clock:     clk,
	}
}

func (uc *notificationUseCaseImpl) RelayDue(ctx context.Context) (int, error) {
	sent := 0
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		now := uc.clock.Now()
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, uc.cfg.RelayBatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			pubErr := uc.publisher.Publish(ctx, job.Topic, noticeKey(job.Payload), job.Payload)
			uc.metrics.NotificationRelayed(job.Topic, pubErr == nil)
			if pubErr == nil {
				if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID, now); err != nil {
					return err
				}
				sent++
				continue
			}

			slog.Warn("notification relay failed",
				"job_id", job.ID.String(),
				"topic", job.Topic,
				"attempts", job.Attempts+1,
				"error", pubErr.Error())
			runAt := now.Add(relayBackoff(job.Attempts))
			if err := tx.Notifications().MarkRetry(ctx, tx.DB(), job.ID, pubErr.Error(), runAt, uc.cfg.RelayMaxAttempts, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}

// noticeKey partitions by order so one order's notices stay ordered.
func noticeKey(payload []byte) []byte {
	var n struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(payload, &n); err != nil || n.OrderID == "" {
		return nil
	}
	return []byte(n.OrderID)
}

func relayBackoff(attempts int) time.Duration {
	d := relayBaseBackoff
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= relayMaxBackoff {
			return relayMaxBackoff
		}
	}
	return d
}
