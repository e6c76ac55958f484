package shared

import (
	"context"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Inventory() InventoryRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
	PaymentEvents() PaymentEventRepository
	Counters() CounterRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	InventoryByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Record, error)
	// ActiveReservedQuantities sums quantities of active, unexpired holds per
	// inventory id. Holds owned by exclude are left out when it is non-nil.
	ActiveReservedQuantities(ctx context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (map[uuid.UUID]int, error)
	ActiveReservationByHolder(ctx context.Context, holder reservation.Holder, now time.Time) (*reservation.Reservation, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ReservationBySession(ctx context.Context, sessionID string) (*reservation.Reservation, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	OrderBySession(ctx context.Context, sessionID string) (*order.Order, error)
}

// InventoryRepository applies stock changes as single conditional updates.
// The bool result reports whether a record of the given kind was changed.
type InventoryRepository interface {
	CommitPurchase(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, now time.Time) (bool, error)
	Restore(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, now time.Time) (bool, error)
	KindOf(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (inventory.Kind, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	CancelActiveByHolder(ctx context.Context, tx sqlc.DBTX, holder reservation.Holder, now time.Time) (int64, error)
	LinkSession(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, sessionID string, now time.Time) (bool, error)
	TransitionActive(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, to reservation.Status, now time.Time) (bool, error)
	Consume(ctx context.Context, tx sqlc.DBTX, sessionID string, reservationID, orderID uuid.UUID, now time.Time) (int64, error)
	ExpireDue(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
	Purge(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	// UpdateStatus persists o only if the stored row still has expectedStatus
	// and expectedRefundedCents.
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, o *order.Order, expectedStatus order.Status, expectedRefundedCents int64) (bool, error)
}

type PaymentEventRepository interface {
	// Claim inserts the event id if absent and reports whether this call won.
	Claim(ctx context.Context, tx sqlc.DBTX, eventID, eventType string, now time.Time) (bool, error)
	DeleteBefore(ctx context.Context, tx sqlc.DBTX, cutoff time.Time) (int64, error)
}

type CounterRepository interface {
	Next(ctx context.Context, tx sqlc.DBTX, name string) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, now time.Time) error
	MarkRetry(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, lastErr string, runAt time.Time, maxAttempts int, now time.Time) error
}
