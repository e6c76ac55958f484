//go:build unit || e2e

// Package fakestore is an in-memory shared.UnitOfWork for usecase tests.
// Within runs against a copy of the state and only publishes it when fn
// returns nil, so rollbacks behave like the Postgres implementation.
package fakestore

import (
	"context"
	"maps"
	"sync"
	"time"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/infra"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/usecase/shared"

	"github.com/google/uuid"
)

type reservationRow struct {
	id         uuid.UUID
	holder     reservation.Holder
	items      reservation.Items
	status     reservation.Status
	expiresAt  time.Time
	sessionID  *string
	orderID    *uuid.UUID
	purgeAfter time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func (r reservationRow) entity() *reservation.Reservation {
	return reservation.Reconstruct(r.id, r.holder, r.items, r.status, r.expiresAt, r.sessionID, r.orderID, r.purgeAfter, r.createdAt, r.updatedAt)
}

type state struct {
	inventory    map[uuid.UUID]*inventory.Record
	reservations map[uuid.UUID]reservationRow
	orders       map[uuid.UUID]order.ReconstructParams
	events       map[string]time.Time
	counters     map[string]int64
	jobs         []shared.NotificationJob
}

func (s *state) clone() *state {
	return &state{
		inventory:    maps.Clone(s.inventory),
		reservations: maps.Clone(s.reservations),
		orders:       maps.Clone(s.orders),
		events:       maps.Clone(s.events),
		counters:     maps.Clone(s.counters),
		jobs:         append([]shared.NotificationJob(nil), s.jobs...),
	}
}

type Store struct {
	mu    sync.Mutex
	state *state
	fail  map[string]error

	// Commits counts successful Within calls.
	Commits int
}

func New() *Store {
	return &Store{
		state: &state{
			inventory:    map[uuid.UUID]*inventory.Record{},
			reservations: map[uuid.UUID]reservationRow{},
			orders:       map[uuid.UUID]order.ReconstructParams{},
			events:       map[string]time.Time{},
			counters:     map[string]int64{},
		},
		fail: map[string]error{},
	}
}

// FailOn makes the named operation return err, e.g. "orders.create".
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		return err
	}
	s.state = work
	s.Commits++
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

// -----------------------------------------------------------------------------
// Seeding and inspection
// -----------------------------------------------------------------------------

func (s *Store) PutInventory(rec *inventory.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.inventory[rec.ID()] = rec
}

func (s *Store) Inventory(id uuid.UUID) *inventory.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.inventory[id]
}

func (s *Store) PutReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.reservations[res.ID()] = rowFrom(res)
}

// DeleteReservation drops the row the way PurgeStale does.
func (s *Store) DeleteReservation(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.reservations, id)
}

func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.state.reservations[id]
	if !ok {
		return nil
	}
	return row.entity()
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.state.reservations))
	for _, row := range s.state.reservations {
		out = append(out, row.entity())
	}
	return out
}

func (s *Store) PutOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.orders[o.ID()] = paramsFrom(o)
}

func (s *Store) Order(id uuid.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.orders[id]
	if !ok {
		return nil
	}
	return order.Reconstruct(p)
}

func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*order.Order, 0, len(s.state.orders))
	for _, p := range s.state.orders {
		out = append(out, order.Reconstruct(p))
	}
	return out
}

func (s *Store) PutEvent(eventID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.events[eventID] = at
}

func (s *Store) HasEvent(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.events[eventID]
	return ok
}

func (s *Store) PutJob(job shared.NotificationJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.jobs = append(s.state.jobs, job)
}

func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.NotificationJob(nil), s.state.jobs...)
}

func rowFrom(res *reservation.Reservation) reservationRow {
	return reservationRow{
		id:         res.ID(),
		holder:     res.Holder(),
		items:      res.Items(),
		status:     res.Status(),
		expiresAt:  res.ExpiresAt(),
		sessionID:  res.PaymentSessionID(),
		orderID:    res.OrderID(),
		purgeAfter: res.PurgeAfter(),
		createdAt:  res.CreatedAt(),
		updatedAt:  res.UpdatedAt(),
	}
}

func paramsFrom(o *order.Order) order.ReconstructParams {
	return order.ReconstructParams{
		ID:               o.ID(),
		Number:           o.Number(),
		UserID:           o.UserID(),
		Email:            o.Email(),
		Items:            o.Items(),
		Amounts:          o.Amounts(),
		Currency:         o.Currency(),
		Status:           o.Status(),
		PaymentSessionID: o.PaymentSessionID(),
		PaymentIntentID:  o.PaymentIntentID(),
		ReservationID:    o.ReservationID(),
		Shipping:         o.Shipping(),
		RefundedCents:    o.RefundedCents(),
		PaidAt:           o.PaidAt(),
		FulfilledAt:      o.FulfilledAt(),
		CancelledAt:      o.CancelledAt(),
		RefundedAt:       o.RefundedAt(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// -----------------------------------------------------------------------------
// Tx
// -----------------------------------------------------------------------------

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Inventory() shared.InventoryRepository        { return &inventoryRepo{t} }
func (t *tx) Reservations() shared.ReservationRepository   { return &reservationRepo{t} }
func (t *tx) Orders() shared.OrderRepository               { return &orderRepo{t} }
func (t *tx) PaymentEvents() shared.PaymentEventRepository { return &eventRepo{t} }
func (t *tx) Counters() shared.CounterRepository           { return &counterRepo{t} }
func (t *tx) Notifications() shared.NotificationRepository { return &notificationRepo{t} }
func (t *tx) Reads() shared.CommandReads                   { return &reads{t} }
func (t *tx) DB() sqlc.DBTX                                { return nil }

func (t *tx) failure(op string) error {
	return t.store.fail[op]
}

// lockedReads serves CommandReads outside a transaction.
type lockedReads struct {
	store *Store
}

func (l *lockedReads) with(fn func(r *reads) error) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return fn(&reads{&tx{store: l.store, st: l.store.state}})
}

func (l *lockedReads) InventoryByIDs(ctx context.Context, ids []uuid.UUID) (out []*inventory.Record, err error) {
	err = l.with(func(r *reads) error { out, err = r.InventoryByIDs(ctx, ids); return err })
	return out, err
}

func (l *lockedReads) ActiveReservedQuantities(ctx context.Context, ids []uuid.UUID, now time.Time, exclude *reservation.Holder) (out map[uuid.UUID]int, err error) {
	err = l.with(func(r *reads) error { out, err = r.ActiveReservedQuantities(ctx, ids, now, exclude); return err })
	return out, err
}

func (l *lockedReads) ActiveReservationByHolder(ctx context.Context, holder reservation.Holder, now time.Time) (out *reservation.Reservation, err error) {
	err = l.with(func(r *reads) error { out, err = r.ActiveReservationByHolder(ctx, holder, now); return err })
	return out, err
}

func (l *lockedReads) ReservationByID(ctx context.Context, id uuid.UUID) (out *reservation.Reservation, err error) {
	err = l.with(func(r *reads) error { out, err = r.ReservationByID(ctx, id); return err })
	return out, err
}

func (l *lockedReads) ReservationBySession(ctx context.Context, sessionID string) (out *reservation.Reservation, err error) {
	err = l.with(func(r *reads) error { out, err = r.ReservationBySession(ctx, sessionID); return err })
	return out, err
}

func (l *lockedReads) OrderByID(ctx context.Context, id uuid.UUID) (out *order.Order, err error) {
	err = l.with(func(r *reads) error { out, err = r.OrderByID(ctx, id); return err })
	return out, err
}

func (l *lockedReads) OrderBySession(ctx context.Context, sessionID string) (out *order.Order, err error) {
	err = l.with(func(r *reads) error { out, err = r.OrderBySession(ctx, sessionID); return err })
	return out, err
}
