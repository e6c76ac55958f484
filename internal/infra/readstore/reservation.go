package readstore

import (
	"context"
	"time"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationBySession(ctx context.Context, db sqlc.DBTX, paymentSessionID pgtype.Text) (sqlc.Reservations, error)
	GetActiveReservationByHolder(ctx context.Context, db sqlc.DBTX, arg sqlc.GetActiveReservationByHolderParams) (sqlc.Reservations, error)
	GetReservationItems(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationItems, error)
	GetActiveReservedQuantities(ctx context.Context, db sqlc.DBTX, arg sqlc.GetActiveReservedQuantitiesParams) ([]sqlc.GetActiveReservedQuantitiesRow, error)
}

type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := s.queries.GetReservationByID(ctx, s.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return s.withItems(ctx, row)
}

func (s *ReservationReadStore) FindBySession(ctx context.Context, sessionID string) (*reservation.Reservation, error) {
	row, err := s.queries.GetReservationBySession(ctx, s.db, pgconv.StringToPgtype(sessionID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found for session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by session", err)
	}
	return s.withItems(ctx, row)
}

// FindActiveByHolder returns the holder's unexpired active reservation.
func (s *ReservationReadStore) FindActiveByHolder(ctx context.Context, holder reservation.Holder, now time.Time) (*reservation.Reservation, error) {
	row, err := s.queries.GetActiveReservationByHolder(ctx, s.db, sqlc.GetActiveReservationByHolderParams{
		HolderType: string(holder.Type),
		HolderKey:  holder.Key,
		Now:        pgconv.TimeToPgtype(now),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active reservation for holder", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active reservation", err)
	}
	return s.withItems(ctx, row)
}

// ReservedQuantities sums active, unexpired holds per inventory id. Ids with
// no hold are absent from the map.
func (s *ReservationReadStore) ReservedQuantities(ctx context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	params := sqlc.GetActiveReservedQuantitiesParams{
		Now:          pgconv.TimeToPgtype(now),
		InventoryIds: ids,
	}
	if exclude != nil {
		params.ExcludeHolderType = string(exclude.Type)
		params.ExcludeHolderKey = exclude.Key
	}

	rows, err := s.queries.GetActiveReservedQuantities(ctx, s.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum reserved quantities", err)
	}
	for _, row := range rows {
		result[row.InventoryID] = int(row.Reserved)
	}
	return result, nil
}

func (s *ReservationReadStore) withItems(ctx context.Context, row sqlc.Reservations) (*reservation.Reservation, error) {
	itemRows, err := s.queries.GetReservationItems(ctx, s.db, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation items", err)
	}

	items := make(reservation.Items, len(itemRows))
	for i, it := range itemRows {
		items[i] = reservation.Item{InventoryID: it.InventoryID, Quantity: int(it.Quantity)}
	}

	return reservation.Reconstruct(
		row.ID,
		reservation.Holder{Type: reservation.HolderType(row.HolderType), Key: row.HolderKey},
		items,
		reservation.Status(row.Status),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.StringPtrFromPgtype(row.PaymentSessionID),
		pgconv.UUIDPtrFromPgtype(row.OrderID),
		pgconv.TimeFromPgtype(row.PurgeAfter),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
