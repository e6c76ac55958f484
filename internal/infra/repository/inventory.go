package repository

import (
	"context"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type InventoryWriteQueries interface {
	CommitBulkStock(ctx context.Context, db sqlc.DBTX, arg sqlc.CommitBulkStockParams) (int64, error)
	CommitSingleStock(ctx context.Context, db sqlc.DBTX, arg sqlc.CommitSingleStockParams) (int64, error)
	RestoreBulkStock(ctx context.Context, db sqlc.DBTX, arg sqlc.RestoreBulkStockParams) (int64, error)
	RestoreSingleStock(ctx context.Context, db sqlc.DBTX, arg sqlc.RestoreSingleStockParams) (int64, error)
	GetInventoryKind(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (string, error)
}

type InventoryRepository struct {
	queries InventoryWriteQueries
}

func NewInventoryRepository(queries InventoryWriteQueries) *InventoryRepository {
	return &InventoryRepository{queries: queries}
}

// stockWrite reports how many rows matched. Zero means the record is gone or
// changed kind; callers decide how to surface that.
type stockWrite func(ctx context.Context) (int64, error)

func (r *InventoryRepository) CommitPurchase(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, now time.Time) (bool, error) {
	write := inventory.MatchKind(kind,
		func(inventory.Single) stockWrite {
			return func(ctx context.Context) (int64, error) {
				return r.queries.CommitSingleStock(ctx, tx, sqlc.CommitSingleStockParams{
					UpdatedAt: pgconv.TimeToPgtype(now),
					ID:        id,
				})
			}
		},
		func(inventory.Bulk) stockWrite {
			return func(ctx context.Context) (int64, error) {
				return r.queries.CommitBulkStock(ctx, tx, sqlc.CommitBulkStockParams{
					Quantity:  pgconv.IntToInt32(quantity),
					UpdatedAt: pgconv.TimeToPgtype(now),
					ID:        id,
				})
			}
		},
	)

	n, err := write(ctx)
	if err != nil {
		return false, infra.WrapRepoErr("failed to commit inventory purchase", err)
	}
	return n > 0, nil
}

func (r *InventoryRepository) Restore(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, now time.Time) (bool, error) {
	write := inventory.MatchKind(kind,
		func(inventory.Single) stockWrite {
			return func(ctx context.Context) (int64, error) {
				return r.queries.RestoreSingleStock(ctx, tx, sqlc.RestoreSingleStockParams{
					UpdatedAt: pgconv.TimeToPgtype(now),
					ID:        id,
				})
			}
		},
		func(inventory.Bulk) stockWrite {
			return func(ctx context.Context) (int64, error) {
				return r.queries.RestoreBulkStock(ctx, tx, sqlc.RestoreBulkStockParams{
					Quantity:  pgconv.IntToInt32(quantity),
					UpdatedAt: pgconv.TimeToPgtype(now),
					ID:        id,
				})
			}
		},
	)

	n, err := write(ctx)
	if err != nil {
		return false, infra.WrapRepoErr("failed to restore inventory", err)
	}
	return n > 0, nil
}

func (r *InventoryRepository) KindOf(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (inventory.Kind, error) {
	raw, err := r.queries.GetInventoryKind(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("inventory record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read inventory kind", err)
	}
	kind, err := inventory.ParseKind(raw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored inventory kind is invalid", err, infra.KindDBFailure)
	}
	return kind, nil
}
