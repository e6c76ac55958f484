//go:build e2e

package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"cardshop/internal/domain/payment"
	commonhttp "cardshop/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	WebhookPath     = "/api/webhooks/payments"
	SignatureHeader = "Payment-Signature"
)

// Sign produces the provider's "t=<unix>,v1=<hex>" header for payload.
func Sign(secret string, payload []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// EventBuilder assembles a provider notification for a session.
type EventBuilder struct {
	ev payment.Event
}

func NewCompletedEvent(sessionID string, reservationID uuid.UUID) *EventBuilder {
	return &EventBuilder{ev: payment.Event{
		ID:   "evt_" + uuid.NewString(),
		Type: payment.EventCheckoutCompleted,
		Data: payment.SessionEvent{
			SessionID:       sessionID,
			PaymentIntentID: "pi_" + uuid.NewString(),
			PaymentStatus:   payment.StatusPaid,
			CustomerEmail:   "buyer@example.com",
			Currency:        "usd",
			ShippingAddress: &payment.Address{
				Name:       "Ash Ketchum",
				Line1:      "1 Route 1",
				City:       "Pallet Town",
				PostalCode: "00001",
				Country:    "JP",
			},
			Metadata: payment.SessionMetadata{ReservationID: reservationID.String()},
		},
	}}
}

func (b *EventBuilder) WithID(id string) *EventBuilder {
	b.ev.ID = id
	return b
}

func (b *EventBuilder) WithType(eventType string) *EventBuilder {
	b.ev.Type = eventType
	return b
}

func (b *EventBuilder) WithPaymentStatus(status string) *EventBuilder {
	b.ev.Data.PaymentStatus = status
	return b
}

// WithItem appends a line item and keeps the amounts consistent with it.
func (b *EventBuilder) WithItem(inventoryID uuid.UUID, name string, unitAmount int64, quantity int) *EventBuilder {
	b.ev.Data.LineItems = append(b.ev.Data.LineItems, payment.LineItem{
		InventoryID: inventoryID,
		Name:        name,
		UnitAmount:  unitAmount,
		Quantity:    quantity,
	})
	b.ev.Data.Amounts.Subtotal += unitAmount * int64(quantity)
	b.ev.Data.Amounts.Total = b.ev.Data.Amounts.Subtotal + b.ev.Data.Amounts.Tax + b.ev.Data.Amounts.Shipping
	return b
}

func (b *EventBuilder) ID() string {
	return b.ev.ID
}

func (b *EventBuilder) Payload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(b.ev)
	require.NoError(t, err)
	return payload
}

// Deliver posts the event signed with secret, the way the provider would.
func (b *EventBuilder) Deliver(t *testing.T, router *gin.Engine, secret string) *httptest.ResponseRecorder {
	t.Helper()
	payload := b.Payload(t)
	return commonhttp.PerformRawRequest(t, router, http.MethodPost, WebhookPath, payload, map[string]string{
		"Content-Type":  "application/json",
		SignatureHeader: Sign(secret, payload, time.Now()),
	})
}
