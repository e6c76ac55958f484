package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrMissingSession    = errors.New("order requires a payment session id")
	ErrEmptyItems        = errors.New("order must contain at least one item")
	ErrInvalidEmail      = errors.New("order requires a customer email")
	ErrInvalidItem       = errors.New("invalid order item")
)

// Item is a snapshot of what was bought, detached from the live inventory
// record so historical orders stay stable.
type Item struct {
	InventoryID    uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

type Address struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type Order struct {
	id               uuid.UUID
	number           int64
	userID           *uuid.UUID
	email            string
	items            []Item
	amounts          Amounts
	currency         string
	status           Status
	paymentSessionID string
	paymentIntentID  *string
	reservationID    *uuid.UUID
	shipping         *Address
	refundedCents    int64
	paidAt           *time.Time
	fulfilledAt      *time.Time
	cancelledAt      *time.Time
	refundedAt       *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

type NewOrderParams struct {
	Number           int64
	UserID           *uuid.UUID
	Email            string
	Items            []Item
	Amounts          Amounts
	Currency         string
	Paid             bool
	PaymentSessionID string
	PaymentIntentID  *string
	ReservationID    *uuid.UUID
	Shipping         *Address
}

func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	if strings.TrimSpace(p.PaymentSessionID) == "" {
		return nil, ErrMissingSession
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, ErrInvalidEmail
	}
	if len(p.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range p.Items {
		if it.InventoryID == uuid.Nil || it.Quantity < 1 || it.UnitPriceCents < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidItem, it.InventoryID)
		}
	}
	if err := p.Amounts.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:               uuid.New(),
		number:           p.Number,
		userID:           p.UserID,
		email:            strings.TrimSpace(p.Email),
		items:            p.Items,
		amounts:          p.Amounts,
		currency:         strings.ToLower(p.Currency),
		status:           StatusPending,
		paymentSessionID: p.PaymentSessionID,
		paymentIntentID:  p.PaymentIntentID,
		reservationID:    p.ReservationID,
		shipping:         p.Shipping,
		createdAt:        now,
		updatedAt:        now,
	}
	if p.Paid {
		o.status = StatusPaid
		o.paidAt = &now
	}
	return o, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	Number           int64
	UserID           *uuid.UUID
	Email            string
	Items            []Item
	Amounts          Amounts
	Currency         string
	Status           Status
	PaymentSessionID string
	PaymentIntentID  *string
	ReservationID    *uuid.UUID
	Shipping         *Address
	RefundedCents    int64
	PaidAt           *time.Time
	FulfilledAt      *time.Time
	CancelledAt      *time.Time
	RefundedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:               p.ID,
		number:           p.Number,
		userID:           p.UserID,
		email:            p.Email,
		items:            p.Items,
		amounts:          p.Amounts,
		currency:         p.Currency,
		status:           p.Status,
		paymentSessionID: p.PaymentSessionID,
		paymentIntentID:  p.PaymentIntentID,
		reservationID:    p.ReservationID,
		shipping:         p.Shipping,
		refundedCents:    p.RefundedCents,
		paidAt:           p.PaidAt,
		fulfilledAt:      p.FulfilledAt,
		cancelledAt:      p.CancelledAt,
		refundedAt:       p.RefundedAt,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) Number() int64             { return o.number }
func (o *Order) UserID() *uuid.UUID        { return o.userID }
func (o *Order) Email() string             { return o.email }
func (o *Order) Items() []Item             { return o.items }
func (o *Order) Amounts() Amounts          { return o.amounts }
func (o *Order) Currency() string          { return o.currency }
func (o *Order) Status() Status            { return o.status }
func (o *Order) PaymentSessionID() string  { return o.paymentSessionID }
func (o *Order) PaymentIntentID() *string  { return o.paymentIntentID }
func (o *Order) ReservationID() *uuid.UUID { return o.reservationID }
func (o *Order) Shipping() *Address        { return o.shipping }
func (o *Order) RefundedCents() int64      { return o.refundedCents }
func (o *Order) PaidAt() *time.Time        { return o.paidAt }
func (o *Order) FulfilledAt() *time.Time   { return o.fulfilledAt }
func (o *Order) CancelledAt() *time.Time   { return o.cancelledAt }
func (o *Order) RefundedAt() *time.Time    { return o.refundedAt }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// FormattedNumber is the customer-facing order reference.
func (o *Order) FormattedNumber() string {
	return fmt.Sprintf("ORD-%06d", o.number)
}

// Change describes one status transition and the inventory side effect the
// caller must apply together with persisting it.
type Change struct {
	From             Status
	To               Status
	CommitInventory  bool
	RestoreInventory bool
}

func (o *Order) Transition(to Status, now time.Time) (Change, error) {
	from := o.status
	if !from.CanTransitionTo(to) {
		return Change{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	change := Change{
		From:             from,
		To:               to,
		CommitInventory:  from == StatusPending && to == StatusPaid,
		RestoreInventory: from.Decremented() && (to == StatusCancelled || to == StatusRefunded),
	}

	o.status = to
	o.updatedAt = now
	switch to {
	case StatusPaid:
		setOnce(&o.paidAt, now)
	case StatusFulfilled:
		setOnce(&o.fulfilledAt, now)
	case StatusCancelled:
		setOnce(&o.cancelledAt, now)
	case StatusRefunded:
		setOnce(&o.refundedAt, now)
		o.refundedCents = o.amounts.TotalCents
	}
	return change, nil
}

type RefundResult struct {
	Change
	Full        bool
	AmountCents int64
}

// Refund records a refund of amountCents, or of the whole order when
// amountCents is nil. Each amount is judged on its own: below the order total
// it is partial and only adds to RefundedCents, at or above it the order moves
// to refunded. Partial refunds need an order that was paid.
func (o *Order) Refund(amountCents *int64, now time.Time) (RefundResult, error) {
	if o.status.IsTerminal() {
		return RefundResult{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, StatusRefunded)
	}

	total := o.amounts.TotalCents
	if amountCents != nil {
		if *amountCents <= 0 {
			return RefundResult{}, ErrInvalidAmount
		}
		if *amountCents < total {
			if !o.status.Decremented() {
				return RefundResult{}, fmt.Errorf("%w: partial refund of a %s order", ErrInvalidTransition, o.status)
			}
			o.refundedCents = min(o.refundedCents+*amountCents, total)
			o.updatedAt = now
			return RefundResult{
				Change:      Change{From: o.status, To: o.status},
				AmountCents: *amountCents,
			}, nil
		}
	}

	remaining := total - o.refundedCents
	change, err := o.Transition(StatusRefunded, now)
	if err != nil {
		return RefundResult{}, err
	}
	return RefundResult{Change: change, Full: true, AmountCents: remaining}, nil
}

func setOnce(field **time.Time, now time.Time) {
	if *field == nil {
		t := now
		*field = &t
	}
}
