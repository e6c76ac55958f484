package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidHoldDuration  = errors.New("hold duration must be positive")
	ErrNotActive            = errors.New("reservation is not active")
	ErrSessionAlreadyLinked = errors.New("payment session already linked")
)

// Reservation is a time-limited hold on inventory by one holder. Only
// active holds with expiresAt in the future count against availability.
type Reservation struct {
	id               uuid.UUID
	holder           Holder
	items            Items
	status           Status
	expiresAt        time.Time
	paymentSessionID *string
	orderID          *uuid.UUID
	purgeAfter       time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

func NewReservation(holder Holder, items Items, now time.Time, hold, retention time.Duration) (*Reservation, error) {
	if err := holder.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	if hold <= 0 {
		return nil, ErrInvalidHoldDuration
	}

	expiresAt := now.Add(hold)
	return &Reservation{
		id:         uuid.New(),
		holder:     holder,
		items:      items,
		status:     StatusActive,
		expiresAt:  expiresAt,
		purgeAfter: expiresAt.Add(max(retention, 0)),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	holder Holder,
	items Items,
	status Status,
	expiresAt time.Time,
	paymentSessionID *string,
	orderID *uuid.UUID,
	purgeAfter, createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		holder:           holder,
		items:            items,
		status:           status,
		expiresAt:        expiresAt,
		paymentSessionID: paymentSessionID,
		orderID:          orderID,
		purgeAfter:       purgeAfter,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) Holder() Holder            { return r.holder }
func (r *Reservation) Items() Items              { return r.items }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) ExpiresAt() time.Time      { return r.expiresAt }
func (r *Reservation) PaymentSessionID() *string { return r.paymentSessionID }
func (r *Reservation) OrderID() *uuid.UUID       { return r.orderID }
func (r *Reservation) PurgeAfter() time.Time     { return r.purgeAfter }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }

// HoldsStockAt reports whether the reservation still counts against
// availability at now.
func (r *Reservation) HoldsStockAt(now time.Time) bool {
	return r.status == StatusActive && r.expiresAt.After(now)
}

func (r *Reservation) LinkSession(sessionID string, now time.Time) error {
	if r.status != StatusActive {
		return fmt.Errorf("%w: %s", ErrNotActive, r.status)
	}
	if r.paymentSessionID != nil && *r.paymentSessionID != sessionID {
		return ErrSessionAlreadyLinked
	}
	r.paymentSessionID = &sessionID
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	return r.transition(StatusCancelled, now)
}

func (r *Reservation) Expire(now time.Time) error {
	return r.transition(StatusExpired, now)
}

func (r *Reservation) Consume(orderID uuid.UUID, now time.Time) error {
	if err := r.transition(StatusConsumed, now); err != nil {
		return err
	}
	r.orderID = &orderID
	return nil
}

func (r *Reservation) transition(to Status, now time.Time) error {
	if r.status != StatusActive {
		return fmt.Errorf("%w: %s", ErrNotActive, r.status)
	}
	r.status = to
	r.updatedAt = now
	return nil
}
