//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"cardshop/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItems(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("folds repeated ids", func(t *testing.T) {
		items, err := reservation.NewItems([]reservation.Item{
			{InventoryID: a, Quantity: 1},
			{InventoryID: b, Quantity: 2},
			{InventoryID: a, Quantity: 3},
		}, 0)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, reservation.Item{InventoryID: a, Quantity: 4}, items[0])
		assert.Equal(t, reservation.Item{InventoryID: b, Quantity: 2}, items[1])
	})

	tests := []struct {
		name  string
		raw   []reservation.Item
		max   int
		errIs error
	}{
		{name: "empty", raw: nil, errIs: reservation.ErrEmptyItems},
		{name: "zero quantity", raw: []reservation.Item{{InventoryID: a, Quantity: 0}}, errIs: reservation.ErrInvalidQuantity},
		{name: "negative quantity", raw: []reservation.Item{{InventoryID: a, Quantity: -1}}, errIs: reservation.ErrInvalidQuantity},
		{name: "nil id", raw: []reservation.Item{{Quantity: 1}}, errIs: reservation.ErrInvalidItem},
		{name: "too many", raw: []reservation.Item{{InventoryID: a, Quantity: 1}, {InventoryID: b, Quantity: 1}}, max: 1, errIs: reservation.ErrTooManyItems},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := reservation.NewItems(tt.raw, tt.max)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestParseHolder(t *testing.T) {
	id := uuid.New()

	h, err := reservation.ParseHolder("guest", id.String())
	require.NoError(t, err)
	assert.Equal(t, reservation.NewGuestHolder(id), h)
	_, ok := h.UserID()
	assert.False(t, ok)

	h, err = reservation.ParseHolder("user", id.String())
	require.NoError(t, err)
	uid, ok := h.UserID()
	assert.True(t, ok)
	assert.Equal(t, id, uid)

	_, err = reservation.ParseHolder("robot", id.String())
	assert.ErrorIs(t, err, reservation.ErrInvalidHolder)

	_, err = reservation.ParseHolder("user", "not-a-uuid")
	assert.ErrorIs(t, err, reservation.ErrInvalidHolder)
}

func TestReservation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	holder := reservation.NewGuestHolder(uuid.New())
	items := reservation.Items{{InventoryID: uuid.New(), Quantity: 2}}

	newActive := func(t *testing.T) *reservation.Reservation {
		t.Helper()
		r, err := reservation.NewReservation(holder, items, now, 10*time.Minute, 24*time.Hour)
		require.NoError(t, err)
		return r
	}

	t.Run("new reservation is active until expiry", func(t *testing.T) {
		r := newActive(t)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reservation.StatusActive, r.Status())
		assert.Equal(t, now.Add(10*time.Minute), r.ExpiresAt())
		assert.Equal(t, now.Add(10*time.Minute+24*time.Hour), r.PurgeAfter())
		assert.True(t, r.HoldsStockAt(now))
		assert.True(t, r.HoldsStockAt(now.Add(9*time.Minute)))
		assert.False(t, r.HoldsStockAt(now.Add(10*time.Minute)))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := reservation.NewReservation(holder, nil, now, time.Minute, 0)
		assert.ErrorIs(t, err, reservation.ErrEmptyItems)

		_, err = reservation.NewReservation(holder, items, now, 0, 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidHoldDuration)

		_, err = reservation.NewReservation(reservation.Holder{}, items, now, time.Minute, 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidHolder)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		r := newActive(t)
		require.NoError(t, r.Cancel(now))
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.False(t, r.HoldsStockAt(now))

		assert.ErrorIs(t, r.Expire(now), reservation.ErrNotActive)
		assert.ErrorIs(t, r.Consume(uuid.New(), now), reservation.ErrNotActive)
		assert.ErrorIs(t, r.LinkSession("cs_1", now), reservation.ErrNotActive)
	})

	t.Run("consume records order", func(t *testing.T) {
		r := newActive(t)
		orderID := uuid.New()
		require.NoError(t, r.Consume(orderID, now))
		assert.Equal(t, reservation.StatusConsumed, r.Status())
		require.NotNil(t, r.OrderID())
		assert.Equal(t, orderID, *r.OrderID())
	})

	t.Run("link session once", func(t *testing.T) {
		r := newActive(t)
		require.NoError(t, r.LinkSession("cs_1", now))
		require.NoError(t, r.LinkSession("cs_1", now))
		assert.ErrorIs(t, r.LinkSession("cs_2", now), reservation.ErrSessionAlreadyLinked)
	})
}
