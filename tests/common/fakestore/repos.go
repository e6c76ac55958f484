//go:build unit || e2e

package fakestore

import (
	"context"
	"sort"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

type reads struct{ t *tx }

func (r *reads) InventoryByIDs(_ context.Context, ids []uuid.UUID) ([]*inventory.Record, error) {
	if err := r.t.failure("reads.inventory"); err != nil {
		return nil, err
	}
	out := []*inventory.Record{}
	for _, id := range ids {
		if rec, ok := r.t.st.inventory[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *reads) ActiveReservedQuantities(_ context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (map[uuid.UUID]int, error) {
	out := map[uuid.UUID]int{}
	for _, row := range r.t.st.reservations {
		if row.status != reservation.StatusActive || !row.expiresAt.After(now) {
			continue
		}
		if exclude != nil && row.holder == *exclude {
			continue
		}
		for _, it := range row.items {
			for _, id := range ids {
				if it.InventoryID == id {
					out[id] += it.Quantity
				}
			}
		}
	}
	return out, nil
}

func (r *reads) ActiveReservationByHolder(_ context.Context, holder reservation.Holder, now time.Time) (*reservation.Reservation, error) {
	var found *reservationRow
	for _, row := range r.t.st.reservations {
		if row.holder != holder || row.status != reservation.StatusActive || !row.expiresAt.After(now) {
			continue
		}
		if found == nil || row.createdAt.After(found.createdAt) {
			found = &row
		}
	}
	if found == nil {
		return nil, notFound("active reservation not found")
	}
	return found.entity(), nil
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.t.st.reservations[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return row.entity(), nil
}

func (r *reads) ReservationBySession(_ context.Context, sessionID string) (*reservation.Reservation, error) {
	for _, row := range r.t.st.reservations {
		if row.sessionID != nil && *row.sessionID == sessionID {
			return row.entity(), nil
		}
	}
	return nil, notFound("reservation not found")
}

func (r *reads) OrderByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	p, ok := r.t.st.orders[id]
	if !ok {
		return nil, notFound("order not found")
	}
	return order.Reconstruct(p), nil
}

func (r *reads) OrderBySession(_ context.Context, sessionID string) (*order.Order, error) {
	for _, p := range r.t.st.orders {
		if p.PaymentSessionID == sessionID {
			return order.Reconstruct(p), nil
		}
	}
	return nil, notFound("order not found")
}

// -----------------------------------------------------------------------------

type inventoryRepo struct{ t *tx }

func (r *inventoryRepo) CommitPurchase(_ context.Context, _ sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, _ time.Time) (bool, error) {
	if err := r.t.failure("inventory.commit"); err != nil {
		return false, err
	}
	rec, ok := r.t.st.inventory[id]
	if !ok || rec.Kind() != kind {
		return false, nil
	}
	r.t.st.inventory[id] = rec.Purchased(quantity)
	return true, nil
}

func (r *inventoryRepo) Restore(_ context.Context, _ sqlc.DBTX, id uuid.UUID, kind inventory.Kind, quantity int, _ time.Time) (bool, error) {
	if err := r.t.failure("inventory.restore"); err != nil {
		return false, err
	}
	rec, ok := r.t.st.inventory[id]
	if !ok || rec.Kind() != kind {
		return false, nil
	}
	r.t.st.inventory[id] = rec.Restored(quantity)
	return true, nil
}

func (r *inventoryRepo) KindOf(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (inventory.Kind, error) {
	rec, ok := r.t.st.inventory[id]
	if !ok {
		return nil, notFound("inventory record not found")
	}
	return rec.Kind(), nil
}

// -----------------------------------------------------------------------------

type reservationRepo struct{ t *tx }

func (r *reservationRepo) Create(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	if err := r.t.failure("reservations.create"); err != nil {
		return err
	}
	for _, row := range r.t.st.reservations {
		if row.holder == res.Holder() && row.status == reservation.StatusActive {
			return infra.WrapRepoErr("failed to create reservation", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.reservations[res.ID()] = rowFrom(res)
	return nil
}

func (r *reservationRepo) CancelActiveByHolder(_ context.Context, _ sqlc.DBTX, holder reservation.Holder, now time.Time) (int64, error) {
	var n int64
	for id, row := range r.t.st.reservations {
		if row.holder == holder && row.status == reservation.StatusActive {
			row.status = reservation.StatusCancelled
			row.updatedAt = now
			r.t.st.reservations[id] = row
			n++
		}
	}
	return n, nil
}

func (r *reservationRepo) LinkSession(_ context.Context, _ sqlc.DBTX, id uuid.UUID, sessionID string, now time.Time) (bool, error) {
	if err := r.t.failure("reservations.link"); err != nil {
		return false, err
	}
	row, ok := r.t.st.reservations[id]
	if !ok || row.status != reservation.StatusActive {
		return false, nil
	}
	if row.sessionID != nil && *row.sessionID != sessionID {
		return false, nil
	}
	row.sessionID = &sessionID
	row.updatedAt = now
	r.t.st.reservations[id] = row
	return true, nil
}

func (r *reservationRepo) TransitionActive(_ context.Context, _ sqlc.DBTX, id uuid.UUID, to reservation.Status, now time.Time) (bool, error) {
	row, ok := r.t.st.reservations[id]
	if !ok || row.status != reservation.StatusActive {
		return false, nil
	}
	row.status = to
	row.updatedAt = now
	r.t.st.reservations[id] = row
	return true, nil
}

func (r *reservationRepo) Consume(_ context.Context, _ sqlc.DBTX, sessionID string, reservationID, orderID uuid.UUID, now time.Time) (int64, error) {
	var n int64
	for id, row := range r.t.st.reservations {
		matches := id == reservationID || (row.sessionID != nil && *row.sessionID == sessionID)
		if !matches || row.status == reservation.StatusConsumed {
			continue
		}
		row.status = reservation.StatusConsumed
		row.orderID = &orderID
		row.updatedAt = now
		r.t.st.reservations[id] = row
		n++
	}
	return n, nil
}

func (r *reservationRepo) ExpireDue(_ context.Context, _ sqlc.DBTX, now time.Time) (int64, error) {
	var n int64
	for id, row := range r.t.st.reservations {
		if row.status == reservation.StatusActive && !row.expiresAt.After(now) {
			row.status = reservation.StatusExpired
			row.updatedAt = now
			r.t.st.reservations[id] = row
			n++
		}
	}
	return n, nil
}

func (r *reservationRepo) Purge(_ context.Context, _ sqlc.DBTX, now time.Time) (int64, error) {
	var n int64
	for id, row := range r.t.st.reservations {
		if !row.purgeAfter.After(now) {
			delete(r.t.st.reservations, id)
			n++
		}
	}
	return n, nil
}

// -----------------------------------------------------------------------------

type orderRepo struct{ t *tx }

func (r *orderRepo) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if err := r.t.failure("orders.create"); err != nil {
		return err
	}
	for _, p := range r.t.st.orders {
		if p.PaymentSessionID == o.PaymentSessionID() {
			return infra.WrapRepoErr("failed to create order", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.orders[o.ID()] = paramsFrom(o)
	return nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, o *order.Order, expectedStatus order.Status, expectedRefundedCents int64) (bool, error) {
	p, ok := r.t.st.orders[o.ID()]
	if !ok || p.Status != expectedStatus || p.RefundedCents != expectedRefundedCents {
		return false, nil
	}
	r.t.st.orders[o.ID()] = paramsFrom(o)
	return true, nil
}

// -----------------------------------------------------------------------------

type eventRepo struct{ t *tx }

func (r *eventRepo) Claim(_ context.Context, _ sqlc.DBTX, eventID, _ string, now time.Time) (bool, error) {
	if _, ok := r.t.st.events[eventID]; ok {
		return false, nil
	}
	r.t.st.events[eventID] = now
	return true, nil
}

func (r *eventRepo) DeleteBefore(_ context.Context, _ sqlc.DBTX, cutoff time.Time) (int64, error) {
	var n int64
	for id, at := range r.t.st.events {
		if at.Before(cutoff) {
			delete(r.t.st.events, id)
			n++
		}
	}
	return n, nil
}

// -----------------------------------------------------------------------------

type counterRepo struct{ t *tx }

func (r *counterRepo) Next(_ context.Context, _ sqlc.DBTX, name string) (int64, error) {
	r.t.st.counters[name]++
	return r.t.st.counters[name], nil
}

// -----------------------------------------------------------------------------

type notificationRepo struct{ t *tx }

func (r *notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.t.st.jobs = append(r.t.st.jobs, shared.NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
		Status:  shared.NotificationStatusQueued,
	})
	return nil
}

func (r *notificationRepo) ClaimDue(_ context.Context, _ sqlc.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	due := []shared.NotificationJob{}
	for _, job := range r.t.st.jobs {
		if job.Status == shared.NotificationStatusQueued && !job.RunAt.After(now) {
			due = append(due, job)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].RunAt.Before(due[j].RunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *notificationRepo) MarkSent(_ context.Context, _ sqlc.DBTX, id uuid.UUID, _ time.Time) error {
	r.update(id, func(job *shared.NotificationJob) {
		job.Status = shared.NotificationStatusSent
		job.Attempts++
		job.LastError = nil
	})
	return nil
}

func (r *notificationRepo) MarkRetry(_ context.Context, _ sqlc.DBTX, id uuid.UUID, lastErr string, runAt time.Time, maxAttempts int, _ time.Time) error {
	r.update(id, func(job *shared.NotificationJob) {
		job.Attempts++
		job.LastError = &lastErr
		job.RunAt = runAt
		if job.Attempts >= maxAttempts {
			job.Status = shared.NotificationStatusFailed
		}
	})
	return nil
}

func (r *notificationRepo) update(id uuid.UUID, fn func(job *shared.NotificationJob)) {
	for i := range r.t.st.jobs {
		if r.t.st.jobs[i].ID == id {
			fn(&r.t.st.jobs[i])
			return
		}
	}
}
