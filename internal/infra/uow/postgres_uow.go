package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra/readstore"
	"cardshop/internal/infra/repository"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	inventoryRepo    shared.InventoryRepository
	reservationRepo  shared.ReservationRepository
	orderRepo        shared.OrderRepository
	paymentEventRepo shared.PaymentEventRepository
	counterRepo      shared.CounterRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = repository.NewInventoryRepository(t.uow.q)
	}
	return t.inventoryRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q)
	}
	return t.reservationRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.uow.q)
	}
	return t.orderRepo
}

func (t *pgTx) PaymentEvents() shared.PaymentEventRepository {
	if t.paymentEventRepo == nil {
		t.paymentEventRepo = repository.NewPaymentEventRepository(t.uow.q)
	}
	return t.paymentEventRepo
}

func (t *pgTx) Counters() shared.CounterRepository {
	if t.counterRepo == nil {
		t.counterRepo = repository.NewCounterRepository(t.uow.q)
	}
	return t.counterRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.uow.q, t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	inventoryStore   *readstore.InventoryReadStore
	reservationStore *readstore.ReservationReadStore
	orderStore       *readstore.OrderReadStore
}

func newCommandReads(q *sqlc.Queries, dbtx sqlc.DBTX) *commandReads {
	return &commandReads{
		inventoryStore:   readstore.NewInventoryReadStore(q, dbtx),
		reservationStore: readstore.NewReservationReadStore(q, dbtx),
		orderStore:       readstore.NewOrderReadStore(q, dbtx),
	}
}

func (r *commandReads) InventoryByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Record, error) {
	return r.inventoryStore.FindByIDs(ctx, ids)
}

func (r *commandReads) ActiveReservedQuantities(ctx context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (map[uuid.UUID]int, error) {
	return r.reservationStore.ReservedQuantities(ctx, ids, now, exclude)
}

func (r *commandReads) ActiveReservationByHolder(ctx context.Context, holder reservation.Holder, now time.Time) (*reservation.Reservation, error) {
	return r.reservationStore.FindActiveByHolder(ctx, holder, now)
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.reservationStore.FindByID(ctx, id)
}

func (r *commandReads) ReservationBySession(ctx context.Context, sessionID string) (*reservation.Reservation, error) {
	return r.reservationStore.FindBySession(ctx, sessionID)
}

func (r *commandReads) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.orderStore.FindByID(ctx, id)
}

func (r *commandReads) OrderBySession(ctx context.Context, sessionID string) (*order.Order, error) {
	return r.orderStore.FindBySession(ctx, sessionID)
}
