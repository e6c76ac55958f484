//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"cardshop/internal/domain/order"
	"cardshop/internal/infra"
	"cardshop/internal/infra/readstore"
	sqlc "cardshop/internal/infra/sqlc/generated"
	readstoremock "cardshop/tests/mock/readstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func orderRow(id uuid.UUID, createdAt time.Time) sqlc.Orders {
	ts := pgtype.Timestamptz{Time: createdAt, Valid: true}
	return sqlc.Orders{
		ID:               id,
		OrderNumber:      42,
		Email:            "buyer@example.com",
		Currency:         "usd",
		Status:           "paid",
		SubtotalCents:    2000,
		TaxCents:         100,
		ShippingCents:    500,
		TotalCents:       2600,
		PaymentSessionID: "cs_" + id.String(),
		PaymentIntentID:  pgtype.Text{String: "pi_1", Valid: true},
		ShippingAddress:  []byte(`{"name":"Ash","line1":"1 Route","city":"Pallet","postal_code":"00001","country":"JP"}`),
		PaidAt:           ts,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

func TestOrderReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	inventoryID := uuid.New()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success: maps row and items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, nil)

		mockQueries.EXPECT().GetOrderByID(ctx, gomock.Any(), orderID).Return(orderRow(orderID, createdAt), nil)
		mockQueries.EXPECT().GetOrderItems(ctx, gomock.Any(), orderID).Return([]sqlc.OrderItems{
			{OrderID: orderID, InventoryID: inventoryID, Name: "Charizard", UnitPriceCents: 1000, Quantity: 2},
		}, nil)

		got, err := store.FindByID(ctx, orderID)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPaid, got.Status())
		assert.Equal(t, "ORD-000042", got.FormattedNumber())
		assert.Equal(t, int64(2600), got.Amounts().TotalCents)
		require.NotNil(t, got.PaidAt())
		require.NotNil(t, got.Shipping())
		assert.Equal(t, "Pallet", got.Shipping().City)
		want := []order.Item{{InventoryID: inventoryID, Name: "Charizard", UnitPriceCents: 1000, Quantity: 2}}
		if diff := cmp.Diff(want, got.Items()); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
		assert.Nil(t, got.UserID())
	})

	t.Run("error: not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, nil)

		mockQueries.EXPECT().GetOrderByID(ctx, gomock.Any(), orderID).Return(sqlc.Orders{}, pgx.ErrNoRows)

		got, err := store.FindByID(ctx, orderID)
		assert.Nil(t, got)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("error: corrupt shipping address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
		store := readstore.NewOrderReadStore(mockQueries, nil)

		row := orderRow(orderID, createdAt)
		row.ShippingAddress = []byte("{")
		mockQueries.EXPECT().GetOrderByID(ctx, gomock.Any(), orderID).Return(row, nil)
		mockQueries.EXPECT().GetOrderItems(ctx, gomock.Any(), orderID).Return([]sqlc.OrderItems{}, nil)

		_, err := store.FindByID(ctx, orderID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestOrderReadStore_FindFirstPage(t *testing.T) {
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
	store := readstore.NewOrderReadStore(mockQueries, nil)

	mockQueries.EXPECT().ListOrdersFirstPage(ctx, gomock.Any(), sqlc.ListOrdersFirstPageParams{Status: "paid", Lim: 3}).
		Return([]sqlc.Orders{orderRow(first, now), orderRow(second, now.Add(-time.Minute))}, nil)
	mockQueries.EXPECT().GetOrderItemsByOrderIDs(ctx, gomock.Any(), []uuid.UUID{first, second}).
		Return([]sqlc.OrderItems{
			{OrderID: second, InventoryID: uuid.New(), Name: "Pikachu", UnitPriceCents: 300, Quantity: 1},
			{OrderID: first, InventoryID: uuid.New(), Name: "Mew", UnitPriceCents: 900, Quantity: 1},
			{OrderID: first, InventoryID: uuid.New(), Name: "Eevee", UnitPriceCents: 200, Quantity: 3},
		}, nil)

	got, err := store.FindFirstPage(ctx, "paid", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].ID())
	assert.Len(t, got[0].Items(), 2)
	assert.Len(t, got[1].Items(), 1)
}

func TestOrderReadStore_FindKeyset_Empty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockOrderReadQueries(ctrl)
	store := readstore.NewOrderReadStore(mockQueries, nil)

	mockQueries.EXPECT().ListOrdersKeyset(ctx, gomock.Any(), gomock.Any()).Return([]sqlc.Orders{}, nil)

	got, err := store.FindKeyset(ctx, "", time.Now(), uuid.New(), 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}
