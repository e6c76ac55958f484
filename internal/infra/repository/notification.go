package repository

import (
	"context"
	"time"

	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/pkg/pgconv"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	ClaimDueNotificationJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueNotificationJobsParams) ([]sqlc.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobSentParams) error
	MarkNotificationJobRetry(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobRetryParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  shared.NotificationStatusQueued,
	}

	if err := r.queries.CreateNotificationJob(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks due jobs for the rest of the transaction; concurrent
// relays skip rows already locked.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, tx, sqlc.ClaimDueNotificationJobsParams{
		Now: pgconv.TimeToPgtype(now),
		Lim: pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:        row.ID,
			Kind:      row.Kind,
			Topic:     row.Topic,
			Payload:   row.Payload,
			RunAt:     row.RunAt.Time,
			Status:    row.Status,
			Attempts:  int(row.Attempts),
			LastError: pgconv.StringPtrFromPgtype(row.LastError),
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, now time.Time) error {
	err := r.queries.MarkNotificationJobSent(ctx, tx, sqlc.MarkNotificationJobSentParams{
		UpdatedAt: pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, lastErr string, runAt time.Time, maxAttempts int, now time.Time) error {
	err := r.queries.MarkNotificationJobRetry(ctx, tx, sqlc.MarkNotificationJobRetryParams{
		LastError:   pgtype.Text{String: lastErr, Valid: lastErr != ""},
		RunAt:       pgconv.TimeToPgtype(runAt),
		MaxAttempts: pgconv.IntToInt32(maxAttempts),
		UpdatedAt:   pgconv.TimeToPgtype(now),
		ID:          id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule notification job", err)
	}
	return nil
}
