//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentEventWriteQueries struct {
	mock.Mock
}

func (m *MockPaymentEventWriteQueries) ClaimPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimPaymentEventParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentEventWriteQueries) DeletePaymentEventsBefore(ctx context.Context, db sqlc.DBTX, claimedAt pgtype.Timestamptz) (int64, error) {
	args := m.Called(ctx, db, claimedAt)
	return args.Get(0).(int64), args.Error(1)
}

func TestPaymentEventRepository_Claim(t *testing.T) {
	tests := []struct {
		name      string
		rows      int64
		mockError error
		want      bool
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "first delivery wins", rows: 1, want: true},
		{name: "redelivery is a no-op", rows: 0, want: false},
		{name: "database error", mockError: &pgconn.PgError{Code: "57014"}, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockPaymentEventWriteQueries)
			q.On("ClaimPaymentEvent", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.ClaimPaymentEventParams) bool {
				return p.EventID == "evt_1" && p.EventType == "checkout.session.completed"
			})).Return(tt.rows, tt.mockError)

			got, err := NewPaymentEventRepository(q).Claim(context.Background(), nil, "evt_1", "checkout.session.completed", time.Now())
			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			q.AssertExpectations(t)
		})
	}
}
