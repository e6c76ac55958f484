//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	"cardshop/internal/infra/readstore"
	sqlc "cardshop/internal/infra/sqlc/generated"
	readstoremock "cardshop/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

func reservationRow(id uuid.UUID, holder reservation.Holder, status string, expiresAt time.Time) sqlc.Reservations {
	return sqlc.Reservations{
		ID:         id,
		HolderType: string(holder.Type),
		HolderKey:  holder.Key,
		Status:     status,
		ExpiresAt:  pgtype.Timestamptz{Time: expiresAt, Valid: true},
		PurgeAfter: pgtype.Timestamptz{Time: expiresAt.Add(24 * time.Hour), Valid: true},
		CreatedAt:  pgtype.Timestamptz{Time: expiresAt.Add(-10 * time.Minute), Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: expiresAt.Add(-10 * time.Minute), Valid: true},
	}
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	reservationID := uuid.New()
	holder := reservation.NewGuestHolder(uuid.New())
	inventoryID := uuid.New()
	expiresAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockReservationReadQueries)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation with items",
			setupMock: func(m *readstoremock.MockReservationReadQueries) {
				m.EXPECT().GetReservationByID(ctx, gomock.Any(), reservationID).
					Return(reservationRow(reservationID, holder, "active", expiresAt), nil)
				m.EXPECT().GetReservationItems(ctx, gomock.Any(), reservationID).
					Return([]sqlc.ReservationItems{{ReservationID: reservationID, InventoryID: inventoryID, Quantity: 2}}, nil)
			},
		},
		{
			name: "error: reservation not found",
			setupMock: func(m *readstoremock.MockReservationReadQueries) {
				m.EXPECT().GetReservationByID(ctx, gomock.Any(), reservationID).
					Return(sqlc.Reservations{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error",
			setupMock: func(m *readstoremock.MockReservationReadQueries) {
				m.EXPECT().GetReservationByID(ctx, gomock.Any(), reservationID).
					Return(sqlc.Reservations{}, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: items query fails",
			setupMock: func(m *readstoremock.MockReservationReadQueries) {
				m.EXPECT().GetReservationByID(ctx, gomock.Any(), reservationID).
					Return(reservationRow(reservationID, holder, "active", expiresAt), nil)
				m.EXPECT().GetReservationItems(ctx, gomock.Any(), reservationID).
					Return(nil, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
			store := readstore.NewReservationReadStore(mockQueries, nil)

			tc.setupMock(mockQueries)

			result, actualError := store.FindByID(ctx, reservationID)

			if tc.expectedError {
				require.Error(t, actualError)
				if tc.expectKind != "" {
					assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				}
				assert.Nil(t, result, "result should be nil when error occurs")
				return
			}

			require.NoError(t, actualError)
			require.NotNil(t, result)
			assert.Equal(t, reservationID, result.ID())
			assert.Equal(t, holder, result.Holder())
			assert.Equal(t, reservation.StatusActive, result.Status())
			assert.True(t, expiresAt.Equal(result.ExpiresAt()))
			require.Len(t, result.Items(), 1)
			assert.Equal(t, reservation.Item{InventoryID: inventoryID, Quantity: 2}, result.Items()[0])
			assert.Nil(t, result.PaymentSessionID())
		})
	}
}

// =============================================================================
// ReservedQuantities Tests
// =============================================================================

func TestReservationReadStore_ReservedQuantities(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a, b := uuid.New(), uuid.New()

	t.Run("sums per inventory id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, nil)

		mockQueries.EXPECT().GetActiveReservedQuantities(ctx, gomock.Any(), sqlc.GetActiveReservedQuantitiesParams{
			Now:          pgtype.Timestamptz{Time: now, Valid: true},
			InventoryIds: []uuid.UUID{a, b},
		}).Return([]sqlc.GetActiveReservedQuantitiesRow{{InventoryID: a, Reserved: 4}}, nil)

		got, err := store.ReservedQuantities(ctx, []uuid.UUID{a, b}, now, nil)
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{a: 4}, got)
	})

	t.Run("excludes the given holder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, nil)
		holder := reservation.NewUserHolder(uuid.New())

		mockQueries.EXPECT().GetActiveReservedQuantities(ctx, gomock.Any(), gomock.Cond(func(p sqlc.GetActiveReservedQuantitiesParams) bool {
			return p.ExcludeHolderType == "user" && p.ExcludeHolderKey == holder.Key
		})).Return([]sqlc.GetActiveReservedQuantitiesRow{}, nil)

		got, err := store.ReservedQuantities(ctx, []uuid.UUID{a}, now, &holder)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no ids skips the query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, nil)

		got, err := store.ReservedQuantities(ctx, nil, now, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, nil)

		mockQueries.EXPECT().GetActiveReservedQuantities(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		_, err := store.ReservedQuantities(ctx, []uuid.UUID{a}, now, nil)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationReadStore_FindActiveByHolder_NotFound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
	store := readstore.NewReservationReadStore(mockQueries, nil)

	mockQueries.EXPECT().GetActiveReservationByHolder(ctx, gomock.Any(), gomock.Any()).Return(sqlc.Reservations{}, pgx.ErrNoRows)

	_, err := store.FindActiveByHolder(ctx, reservation.NewGuestHolder(uuid.New()), time.Now())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
