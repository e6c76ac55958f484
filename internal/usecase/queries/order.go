package queries

import (
	"context"
	"time"

	"cardshop/internal/domain/order"
	"cardshop/internal/infra"

	"github.com/google/uuid"
)

type OrderFilters struct {
	Status string
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindFirstPage(ctx context.Context, status string, limit int32) ([]*order.Order, error)
	FindKeyset(ctx context.Context, status string, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*order.Order, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// List pages orders newest first.
	List(ctx context.Context, filters OrderFilters, cursor *Cursor, limit int) ([]*order.Order, *Cursor, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (q *orderQueriesImpl) List(ctx context.Context, filters OrderFilters, cursor *Cursor, limit int) ([]*order.Order, *Cursor, error) {
	if filters.Status != "" && !order.Status(filters.Status).IsValid() {
		return nil, nil, ErrInvalidStatus
	}

	limit = ValidateLimit(limit)
	var rows []*order.Order
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.FindFirstPage(ctx, filters.Status, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.readStore.FindKeyset(ctx, filters.Status, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}
	return rows, next, nil
}
