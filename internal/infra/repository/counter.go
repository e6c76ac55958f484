package repository

import (
	"context"

	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
)

type CounterQueries interface {
	NextCounterValue(ctx context.Context, db sqlc.DBTX, name string) (int64, error)
}

type CounterRepository struct {
	queries CounterQueries
}

func NewCounterRepository(queries CounterQueries) *CounterRepository {
	return &CounterRepository{queries: queries}
}

// Next increments and returns the named counter in one statement.
func (r *CounterRepository) Next(ctx context.Context, tx sqlc.DBTX, name string) (int64, error) {
	v, err := r.queries.NextCounterValue(ctx, tx, name)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to advance counter "+name, err)
	}
	return v, nil
}
