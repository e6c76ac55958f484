package readstore

import (
	"context"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type InventoryReadQueries interface {
	GetInventoryRecordsByIDs(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.InventoryRecords, error)
}

type InventoryReadStore struct {
	queries InventoryReadQueries
	db      sqlc.DBTX
}

func NewInventoryReadStore(queries InventoryReadQueries, db sqlc.DBTX) *InventoryReadStore {
	return &InventoryReadStore{
		queries: queries,
		db:      db,
	}
}

// FindByIDs returns the records that exist; missing ids are simply absent.
func (s *InventoryReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Record, error) {
	if len(ids) == 0 {
		return []*inventory.Record{}, nil
	}

	rows, err := s.queries.GetInventoryRecordsByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find inventory records", err)
	}

	records := make([]*inventory.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := inventoryFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func inventoryFromRow(row sqlc.InventoryRecords) (*inventory.Record, error) {
	kind, err := inventory.ParseKind(row.Kind)
	if err != nil {
		return nil, infra.WrapRepoErr("stored inventory kind is invalid", err, infra.KindDBFailure)
	}
	status := inventory.Status(row.Status)
	if !status.IsValid() {
		return nil, infra.WrapRepoErr("stored inventory status is invalid: "+row.Status, nil, infra.KindDBFailure)
	}
	return inventory.Reconstruct(row.ID, kind, row.Name, row.PriceCents, int(row.Stock), status, row.IsActive), nil
}
