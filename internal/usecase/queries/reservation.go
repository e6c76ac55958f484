package queries

import (
	"context"
	"time"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	"cardshop/internal/pkg/clock"

	"github.com/google/uuid"
)

type ReservationReadStore interface {
	FindActiveByHolder(ctx context.Context, holder reservation.Holder, now time.Time) (*reservation.Reservation, error)
	ReservedQuantities(ctx context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (map[uuid.UUID]int, error)
}

type ReservationQueries interface {
	CurrentReservation(ctx context.Context, holder reservation.Holder) (*reservation.Reservation, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
	clock     clock.Clock
}

func NewReservationQueries(readStore ReservationReadStore, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore, clock: clk}
}

func (q *reservationQueriesImpl) CurrentReservation(ctx context.Context, holder reservation.Holder) (*reservation.Reservation, error) {
	res, err := q.readStore.FindActiveByHolder(ctx, holder, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoActiveReservation
		}
		return nil, err
	}
	return res, nil
}
