package commands

import (
	"context"
	"time"

	"cardshop/internal/domain/payment"
)

// PaymentGateway opens hosted checkout sessions. A *payment.Handoff error
// carries a usable session.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error)
}

type SignatureVerifier interface {
	Verify(payload []byte, header string, now time.Time) error
}

// EventLocker guards a key for a short TTL. acquired is false when someone
// else holds it.
type EventLocker interface {
	TryLock(ctx context.Context, key string) (unlock func(context.Context) error, acquired bool, err error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, payload []byte) error
}

type Metrics interface {
	CheckoutFinished(outcome string)
	PaymentEventHandled(eventType, outcome string)
	OrderTransitioned(to string)
	MaintenanceRows(task string, n int64)
	NotificationRelayed(topic string, ok bool)
}
