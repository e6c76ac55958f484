package payment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	EventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	EventCheckoutExpired       = "checkout.session.expired"
)

const (
	StatusPaid              = "paid"
	StatusUnpaid            = "unpaid"
	StatusNoPaymentRequired = "no_payment_required"
)

var ErrMalformedEvent = errors.New("malformed payment event")

// Event is the subset of a provider notification the checkout core reads.
type Event struct {
	ID   string       `json:"id"`
	Type string       `json:"type"`
	Data SessionEvent `json:"data"`
}

type SessionEvent struct {
	SessionID       string          `json:"session_id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	PaymentStatus   string          `json:"payment_status"`
	CustomerEmail   string          `json:"customer_email"`
	LineItems       []LineItem      `json:"line_items"`
	Amounts         Amounts         `json:"amounts"`
	Currency        string          `json:"currency"`
	ShippingAddress *Address        `json:"shipping_address,omitempty"`
	Metadata        SessionMetadata `json:"metadata"`
}

type LineItem struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	Name        string    `json:"name"`
	UnitAmount  int64     `json:"unit_amount"`
	Quantity    int       `json:"quantity"`
}

type Amounts struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
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

// SessionMetadata round-trips through the provider: it is attached when the
// session is created and echoed back on every event for that session.
type SessionMetadata struct {
	ReservationID string `json:"reservation_id,omitempty"`
	HolderType    string `json:"holder_type,omitempty"`
	HolderKey     string `json:"holder_key,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

func ParseEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.ID == "" || ev.Type == "" {
		return Event{}, fmt.Errorf("%w: missing id or type", ErrMalformedEvent)
	}
	return ev, nil
}

func (e Event) IsSessionEvent() bool {
	switch e.Type {
	case EventCheckoutCompleted, EventAsyncPaymentSucceeded, EventAsyncPaymentFailed, EventCheckoutExpired:
		return true
	default:
		return false
	}
}

func (s SessionEvent) Paid() bool {
	return s.PaymentStatus == StatusPaid || s.PaymentStatus == StatusNoPaymentRequired
}

func (s SessionEvent) Validate() error {
	if s.SessionID == "" {
		return fmt.Errorf("%w: missing session_id", ErrMalformedEvent)
	}
	return nil
}

// ParsedReservationID returns the reservation the session was opened for, if the
// metadata carries a well-formed one.
func (m SessionMetadata) ParsedReservationID() (uuid.UUID, bool) {
	id, err := uuid.Parse(m.ReservationID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (m SessionMetadata) ParsedUserID() *uuid.UUID {
	id, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil
	}
	return &id
}
