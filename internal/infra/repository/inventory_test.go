//go:build unit

package repository

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInventoryWriteQueries struct {
	mock.Mock
}

func (m *MockInventoryWriteQueries) CommitBulkStock(ctx context.Context, db sqlc.DBTX, arg sqlc.CommitBulkStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryWriteQueries) CommitSingleStock(ctx context.Context, db sqlc.DBTX, arg sqlc.CommitSingleStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryWriteQueries) RestoreBulkStock(ctx context.Context, db sqlc.DBTX, arg sqlc.RestoreBulkStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryWriteQueries) RestoreSingleStock(ctx context.Context, db sqlc.DBTX, arg sqlc.RestoreSingleStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryWriteQueries) GetInventoryKind(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (string, error) {
	args := m.Called(ctx, db, id)
	return args.String(0), args.Error(1)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestInventoryRepository_CommitPurchase(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	t.Run("bulk uses the bulk decrement", func(t *testing.T) {
		q := new(MockInventoryWriteQueries)
		q.On("CommitBulkStock", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CommitBulkStockParams) bool {
			return p.ID == id && p.Quantity == 2
		})).Return(int64(1), nil)

		ok, err := NewInventoryRepository(q).CommitPurchase(context.Background(), nil, id, inventory.Bulk{}, 2, now)
		require.NoError(t, err)
		assert.True(t, ok)
		q.AssertExpectations(t)
		q.AssertNotCalled(t, "CommitSingleStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("single uses the sell-out update", func(t *testing.T) {
		q := new(MockInventoryWriteQueries)
		q.On("CommitSingleStock", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CommitSingleStockParams) bool {
			return p.ID == id
		})).Return(int64(1), nil)

		ok, err := NewInventoryRepository(q).CommitPurchase(context.Background(), nil, id, inventory.Single{}, 1, now)
		require.NoError(t, err)
		assert.True(t, ok)
		q.AssertExpectations(t)
	})

	t.Run("kind mismatch reports no change without logging", func(t *testing.T) {
		logs := captureLogs(t)
		q := new(MockInventoryWriteQueries)
		q.On("CommitBulkStock", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
		q.On("RestoreSingleStock", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
		repo := NewInventoryRepository(q)

		ok, err := repo.CommitPurchase(context.Background(), nil, id, inventory.Bulk{}, 1, now)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.Restore(context.Background(), nil, id, inventory.Single{}, 1, now)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, logs.String())
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockInventoryWriteQueries)
		q.On("CommitSingleStock", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

		_, err := NewInventoryRepository(q).CommitPurchase(context.Background(), nil, id, inventory.Single{}, 1, now)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestInventoryRepository_Restore(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	q := new(MockInventoryWriteQueries)
	q.On("RestoreBulkStock", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.RestoreBulkStockParams) bool {
		return p.ID == id && p.Quantity == 3
	})).Return(int64(1), nil)
	q.On("RestoreSingleStock", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)

	repo := NewInventoryRepository(q)
	ok, err := repo.Restore(context.Background(), nil, id, inventory.Bulk{}, 3, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Restore(context.Background(), nil, id, inventory.Single{}, 1, now)
	require.NoError(t, err)
	assert.True(t, ok)
	q.AssertExpectations(t)
}

func TestInventoryRepository_KindOf(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		raw      string
		queryErr error
		want     inventory.Kind
		wantKind infra.RepositoryErrorKind
	}{
		{name: "single", raw: "single", want: inventory.Single{}},
		{name: "bulk", raw: "bulk", want: inventory.Bulk{}},
		{name: "missing", queryErr: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "corrupt", raw: "lot", wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockInventoryWriteQueries)
			q.On("GetInventoryKind", mock.Anything, mock.Anything, id).Return(tt.raw, tt.queryErr)

			got, err := NewInventoryRepository(q).KindOf(context.Background(), nil, id)
			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
