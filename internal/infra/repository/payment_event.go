package repository

import (
	"context"
	"time"

	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentEventWriteQueries interface {
	ClaimPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimPaymentEventParams) (int64, error)
	DeletePaymentEventsBefore(ctx context.Context, db sqlc.DBTX, claimedAt pgtype.Timestamptz) (int64, error)
}

type PaymentEventRepository struct {
	queries PaymentEventWriteQueries
}

func NewPaymentEventRepository(queries PaymentEventWriteQueries) *PaymentEventRepository {
	return &PaymentEventRepository{queries: queries}
}

func (r *PaymentEventRepository) Claim(ctx context.Context, tx sqlc.DBTX, eventID, eventType string, now time.Time) (bool, error) {
	n, err := r.queries.ClaimPaymentEvent(ctx, tx, sqlc.ClaimPaymentEventParams{
		EventID:   eventID,
		EventType: eventType,
		ClaimedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim payment event", err)
	}
	return n == 1, nil
}

func (r *PaymentEventRepository) DeleteBefore(ctx context.Context, tx sqlc.DBTX, cutoff time.Time) (int64, error) {
	n, err := r.queries.DeletePaymentEventsBefore(ctx, tx, pgconv.TimeToPgtype(cutoff))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to prune payment events", err)
	}
	return n, nil
}
