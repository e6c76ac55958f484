//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	"cardshop/internal/pkg/clock"
	"cardshop/internal/usecase/queries"
	"cardshop/tests/common/builder"
	queriesmock "cardshop/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var queryNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func notFound() error {
	return infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)
}

func TestInventoryQueries_Availability(t *testing.T) {
	ctx := context.Background()

	t.Run("subtracts holds from bulk stock and flags held singles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		records := queriesmock.NewMockInventoryReadStore(ctrl)
		holds := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewInventoryQueries(records, holds, clock.NewMockClock(queryNow))

		bulk := builder.NewInventoryBuilder().BuildDomain()
		single := builder.NewSingleBuilder().BuildDomain()
		ids := []uuid.UUID{bulk.ID(), single.ID()}

		records.EXPECT().FindByIDs(ctx, ids).Return([]*inventory.Record{bulk, single}, nil)
		holds.EXPECT().ReservedQuantities(ctx, ids, queryNow, nil).
			Return(map[uuid.UUID]int{bulk.ID(): 2, single.ID(): 1}, nil)

		views, err := q.Availability(ctx, ids)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, 3, views[0].Available)
		assert.Equal(t, "bulk", views[0].Kind)
		assert.Equal(t, 0, views[1].Available)
		assert.True(t, views[1].Held)
	})

	t.Run("unknown ids skip the hold lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		records := queriesmock.NewMockInventoryReadStore(ctrl)
		holds := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewInventoryQueries(records, holds, clock.NewMockClock(queryNow))

		records.EXPECT().FindByIDs(ctx, gomock.Any()).Return(nil, nil)

		views, err := q.Availability(ctx, []uuid.UUID{uuid.New()})

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("inactive records report nothing available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		records := queriesmock.NewMockInventoryReadStore(ctrl)
		holds := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewInventoryQueries(records, holds, clock.NewMockClock(queryNow))

		rec := builder.NewInventoryBuilder().With(func(b *builder.InventoryBuilder) { b.IsActive = false }).BuildDomain()
		records.EXPECT().FindByIDs(ctx, gomock.Any()).Return([]*inventory.Record{rec}, nil)
		holds.EXPECT().ReservedQuantities(ctx, gomock.Any(), queryNow, nil).Return(map[uuid.UUID]int{}, nil)

		views, err := q.Availability(ctx, []uuid.UUID{rec.ID()})

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.False(t, views[0].Listed)
		assert.Zero(t, views[0].Available)
	})
}

func TestReservationQueries_CurrentReservation(t *testing.T) {
	ctx := context.Background()
	holder := reservation.NewGuestHolder(uuid.New())

	t.Run("returns the active hold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store, clock.NewMockClock(queryNow))

		items, err := reservation.NewItems([]reservation.Item{{InventoryID: uuid.New(), Quantity: 1}}, 0)
		require.NoError(t, err)
		res, err := reservation.NewReservation(holder, items, queryNow, 10*time.Minute, time.Hour)
		require.NoError(t, err)
		store.EXPECT().FindActiveByHolder(ctx, holder, queryNow).Return(res, nil)

		got, err := q.CurrentReservation(ctx, holder)

		require.NoError(t, err)
		assert.Equal(t, res.ID(), got.ID())
	})

	t.Run("not found becomes no active reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockReservationReadStore(ctrl)
		q := queries.NewReservationQueries(store, clock.NewMockClock(queryNow))

		store.EXPECT().FindActiveByHolder(ctx, holder, queryNow).Return(nil, notFound())

		_, err := q.CurrentReservation(ctx, holder)

		assert.ErrorIs(t, err, queries.ErrNoActiveReservation)
	})
}

func TestOrderQueries(t *testing.T) {
	ctx := context.Background()

	page := func(n int) []*order.Order {
		out := make([]*order.Order, n)
		for i := range out {
			out[i] = builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
				b.Number = int64(i + 1)
				b.CreatedAt = queryNow.Add(-time.Duration(i) * time.Minute)
			}).BuildDomain()
		}
		return out
	}

	t.Run("GetByID maps not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		q := queries.NewOrderQueries(store)

		id := uuid.New()
		store.EXPECT().FindByID(ctx, id).Return(nil, notFound())

		_, err := q.GetByID(ctx, id)

		assert.ErrorIs(t, err, queries.ErrOrderNotFound)
	})

	t.Run("first page fetches one extra row to detect a next page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		q := queries.NewOrderQueries(store)

		rows := page(3)
		store.EXPECT().FindFirstPage(ctx, "paid", int32(3)).Return(rows, nil)

		got, next, err := q.List(ctx, queries.OrderFilters{Status: "paid"}, nil, 2)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		require.NotNil(t, next)

		createdAt, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID(), id)
		assert.True(t, rows[1].CreatedAt().Equal(createdAt))
	})

	t.Run("cursor continues with keyset and last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		q := queries.NewOrderQueries(store)

		lastID := uuid.New()
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(queryNow, lastID)}
		store.EXPECT().FindKeyset(ctx, "", gomock.Any(), lastID, int32(21)).Return(page(1), nil)

		got, next, err := q.List(ctx, queries.OrderFilters{}, cursor, 0)

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Nil(t, next)
	})

	t.Run("rejects unknown status and tampered cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		q := queries.NewOrderQueries(store)

		_, _, err := q.List(ctx, queries.OrderFilters{Status: "shipped"}, nil, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidStatus)

		_, _, err = q.List(ctx, queries.OrderFilters{}, &queries.Cursor{After: "%%%"}, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}
