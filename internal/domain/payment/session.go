package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionLineItem struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	Name        string    `json:"name"`
	UnitAmount  int64     `json:"unit_amount"`
	Quantity    int       `json:"quantity"`
}

type SessionRequest struct {
	Currency      string            `json:"currency"`
	LineItems     []SessionLineItem `json:"line_items"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	ExpiresAt     int64             `json:"expires_at"`
	Metadata      SessionMetadata   `json:"metadata"`
}

type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Handoff is returned by a gateway when the provider answered with a
// redirect to its hosted page instead of a session body. It carries a
// usable session and must be treated as success by callers.
type Handoff struct {
	Session Session
}

func (h *Handoff) Error() string {
	return fmt.Sprintf("payment handoff to %s", h.Session.URL)
}

func NewSessionRequest(currency string, items []SessionLineItem, successURL, cancelURL string, expiresAt time.Time, md SessionMetadata) SessionRequest {
	return SessionRequest{
		Currency:   currency,
		LineItems:  items,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		ExpiresAt:  expiresAt.Unix(),
		Metadata:   md,
	}
}
