package queries

import (
	"context"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/pkg/clock"

	"github.com/google/uuid"
)

type AvailabilityView struct {
	InventoryID uuid.UUID
	Kind        string
	Name        string
	PriceCents  int64
	Listed      bool
	Available   int
	Held        bool
}

type InventoryReadStore interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Record, error)
}

type InventoryQueries interface {
	// Availability reports stock left after active holds. Unknown ids are
	// omitted.
	Availability(ctx context.Context, ids []uuid.UUID) ([]*AvailabilityView, error)
}

type inventoryQueriesImpl struct {
	records InventoryReadStore
	holds   ReservationReadStore
	clock   clock.Clock
}

func NewInventoryQueries(records InventoryReadStore, holds ReservationReadStore, clk clock.Clock) InventoryQueries {
	return &inventoryQueriesImpl{records: records, holds: holds, clock: clk}
}

func (q *inventoryQueriesImpl) Availability(ctx context.Context, ids []uuid.UUID) ([]*AvailabilityView, error) {
	records, err := q.records.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*AvailabilityView{}, nil
	}

	found := make([]uuid.UUID, len(records))
	for i, rec := range records {
		found[i] = rec.ID()
	}
	reserved, err := q.holds.ReservedQuantities(ctx, found, q.clock.Now(), nil)
	if err != nil {
		return nil, err
	}

	views := make([]*AvailabilityView, len(records))
	for i, rec := range records {
		a := rec.Availability(reserved[rec.ID()])
		views[i] = &AvailabilityView{
			InventoryID: rec.ID(),
			Kind:        rec.Kind().String(),
			Name:        rec.Name(),
			PriceCents:  rec.PriceCents(),
			Listed:      rec.Listed(),
			Available:   a.Available,
			Held:        a.Held,
		}
	}
	return views, nil
}
