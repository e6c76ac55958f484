package commands

import (
	"context"
	"log/slog"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrReservationNotActive = errs.New("reservation is not active")
	ErrReservationConflict  = errs.New("concurrent reservation for holder")
)

// ItemAvailabilityError names the inventory record that failed an
// availability check. Err is one of the inventory availability errors.
type ItemAvailabilityError struct {
	InventoryID uuid.UUID
	Err         error
}

func (e *ItemAvailabilityError) Error() string {
	return e.Err.Error() + ": " + e.InventoryID.String()
}

func (e *ItemAvailabilityError) Unwrap() error {
	return e.Err
}

type ReservationCommands interface {
	ActiveReservedQuantity(ctx context.Context, inventoryIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// CreateReservation replaces the holder's current hold. holdMinutes <= 0
	// uses the configured default.
	CreateReservation(ctx context.Context, holder reservation.Holder, items []reservation.Item, holdMinutes int) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, holder reservation.Holder, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.CheckoutConfig
	clock clock.Clock
}

func NewReservationUseCase(uow shared.UnitOfWork, cfg config.CheckoutConfig, clk clock.Clock) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow, cfg: cfg, clock: clk}
}

func (uc *reservationUseCaseImpl) ActiveReservedQuantity(ctx context.Context, inventoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return uc.uow.CommandReads().ActiveReservedQuantities(ctx, inventoryIDs, uc.clock.Now(), nil)
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, holder reservation.Holder, raw []reservation.Item, holdMinutes int) (*reservation.Reservation, error) {
	if err := holder.Validate(); err != nil {
		return nil, err
	}
	items, err := reservation.NewItems(raw, uc.cfg.MaxCartItems)
	if err != nil {
		return nil, err
	}

	hold := uc.cfg.HoldDuration()
	if holdMinutes > 0 {
		hold = time.Duration(holdMinutes) * time.Minute
	}

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		if err := checkAvailability(ctx, tx.Reads(), holder, items, now); err != nil {
			return err
		}

		res, err := reservation.NewReservation(holder, items, now, hold, uc.cfg.ReservationRetention)
		if err != nil {
			return err
		}

		replaced, err := tx.Reservations().CancelActiveByHolder(ctx, tx.DB(), holder, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrReservationConflict)
			}
			return err
		}

		if replaced > 0 {
			slog.Debug("replaced previous reservation", "holder", holder.String(), "count", replaced)
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// checkAvailability validates every item against live inventory minus
// holds owned by other holders.
func checkAvailability(ctx context.Context, reads shared.CommandReads, holder reservation.Holder, items reservation.Items, now time.Time) error {
	ids := items.InventoryIDs()
	records, err := reads.InventoryByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*inventory.Record, len(records))
	for _, rec := range records {
		byID[rec.ID()] = rec
	}

	reserved, err := reads.ActiveReservedQuantities(ctx, ids, now, &holder)
	if err != nil {
		return err
	}

	for _, it := range items {
		rec, ok := byID[it.InventoryID]
		if !ok {
			return &ItemAvailabilityError{InventoryID: it.InventoryID, Err: inventory.ErrUnavailable}
		}
		if err := rec.CheckHold(it.Quantity, reserved[it.InventoryID]); err != nil {
			return &ItemAvailabilityError{InventoryID: it.InventoryID, Err: err}
		}
	}
	return nil
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, holder reservation.Holder, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		// Another holder's reservation is reported as missing.
		if res.Holder() != holder {
			return ErrReservationNotFound
		}

		ok, err := tx.Reservations().TransitionActive(ctx, tx.DB(), id, reservation.StatusCancelled, uc.clock.Now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrReservationNotActive
		}
		return nil
	})
}
