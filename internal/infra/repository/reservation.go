package repository

import (
	"context"
	"time"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	"cardshop/internal/infra/repository/converter"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	CreateReservationItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationItemParams) error
	CancelActiveReservationsByHolder(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelActiveReservationsByHolderParams) (int64, error)
	LinkReservationSession(ctx context.Context, db sqlc.DBTX, arg sqlc.LinkReservationSessionParams) (int64, error)
	TransitionActiveReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.TransitionActiveReservationParams) (int64, error)
	ConsumeReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.ConsumeReservationParams) (int64, error)
	ExpireReservations(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
	PurgeReservations(ctx context.Context, db sqlc.DBTX, purgeAfter pgtype.Timestamptz) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{queries: queries}
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	for _, item := range converter.ReservationItemsToInfra(res) {
		if err := r.queries.CreateReservationItem(ctx, tx, item); err != nil {
			return infra.WrapRepoErr("failed to create reservation item", err)
		}
	}
	return nil
}

func (r *ReservationRepository) CancelActiveByHolder(ctx context.Context, tx sqlc.DBTX, holder reservation.Holder, now time.Time) (int64, error) {
	n, err := r.queries.CancelActiveReservationsByHolder(ctx, tx, sqlc.CancelActiveReservationsByHolderParams{
		UpdatedAt:  pgconv.TimeToPgtype(now),
		HolderType: string(holder.Type),
		HolderKey:  holder.Key,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel holder reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) LinkSession(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, sessionID string, now time.Time) (bool, error) {
	n, err := r.queries.LinkReservationSession(ctx, tx, sqlc.LinkReservationSessionParams{
		PaymentSessionID: pgconv.StringToPgtype(sessionID),
		UpdatedAt:        pgconv.TimeToPgtype(now),
		ID:               id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to link payment session", err)
	}
	return n > 0, nil
}

func (r *ReservationRepository) TransitionActive(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, to reservation.Status, now time.Time) (bool, error) {
	n, err := r.queries.TransitionActiveReservation(ctx, tx, sqlc.TransitionActiveReservationParams{
		Status:    to.String(),
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return n > 0, nil
}

func (r *ReservationRepository) Consume(ctx context.Context, tx sqlc.DBTX, sessionID string, reservationID, orderID uuid.UUID, now time.Time) (int64, error) {
	n, err := r.queries.ConsumeReservation(ctx, tx, sqlc.ConsumeReservationParams{
		OrderID:          pgconv.UUIDToPgtype(orderID),
		UpdatedAt:        pgconv.TimeToPgtype(now),
		PaymentSessionID: pgconv.StringToPgtype(sessionID),
		ReservationID:    reservationID,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to consume reservation", err)
	}
	return n, nil
}

func (r *ReservationRepository) ExpireDue(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	n, err := r.queries.ExpireReservations(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) Purge(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	n, err := r.queries.PurgeReservations(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge reservations", err)
	}
	return n, nil
}
