//go:build unit

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardshop/internal/domain/payment"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NewTestConfig().Payment
	cfg.APIBaseURL = srv.URL
	return NewHTTPGateway(cfg)
}

func sessionRequest() payment.SessionRequest {
	return payment.NewSessionRequest("usd",
		[]payment.SessionLineItem{{InventoryID: uuid.New(), Name: "Charizard", UnitAmount: 1200, Quantity: 1}},
		"https://shop.example/success", "https://shop.example/cart",
		time.Now().Add(10*time.Minute),
		payment.SessionMetadata{ReservationID: uuid.NewString(), HolderType: "guest", HolderKey: uuid.NewString()},
	)
}

func TestHTTPGateway_CreateSession_JSON(t *testing.T) {
	req := sessionRequest()
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sessionsPath, r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, req.Metadata.ReservationID, r.Header.Get(idempotencyKeyHeader))

		var got payment.SessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, req.LineItems, got.LineItems)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_123","url":"https://pay.example/cs_123"}`))
	})

	s, err := gw.CreateSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, payment.Session{ID: "cs_123", URL: "https://pay.example/cs_123"}, s)
}

func TestHTTPGateway_CreateSession_RedirectIsHandoff(t *testing.T) {
	tests := []struct {
		name     string
		headerID string
		location string
		wantID   string
	}{
		{name: "session id header", headerID: "cs_hdr", location: "https://pay.example/pay/cs_hdr", wantID: "cs_hdr"},
		{name: "session id in query", location: "https://pay.example/pay?session_id=cs_q", wantID: "cs_q"},
		{name: "session id in path", location: "https://pay.example/pay/cs_path", wantID: "cs_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.headerID != "" {
					w.Header().Set(sessionIDHeader, tt.headerID)
				}
				w.Header().Set("Location", tt.location)
				w.WriteHeader(http.StatusSeeOther)
			})

			s, err := gw.CreateSession(context.Background(), sessionRequest())

			var handoff *payment.Handoff
			require.True(t, errors.As(err, &handoff), "expected handoff, got %v", err)
			assert.Equal(t, tt.wantID, handoff.Session.ID)
			assert.Equal(t, tt.location, handoff.Session.URL)
			assert.Equal(t, handoff.Session, s)
		})
	}
}

func TestHTTPGateway_CreateSession_Failures(t *testing.T) {
	t.Run("provider error status", func(t *testing.T) {
		gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "card network down", http.StatusBadGateway)
		})
		_, err := gw.CreateSession(context.Background(), sessionRequest())
		require.Error(t, err)
		assert.True(t, errs.Is(err, ErrGatewayRejected))
		assert.Contains(t, err.Error(), "card network down")
	})

	t.Run("body missing url", func(t *testing.T) {
		gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"cs_1"}`))
		})
		_, err := gw.CreateSession(context.Background(), sessionRequest())
		assert.True(t, errs.Is(err, ErrBadResponse))
	})

	t.Run("redirect without location", func(t *testing.T) {
		gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusSeeOther)
		})
		_, err := gw.CreateSession(context.Background(), sessionRequest())
		assert.True(t, errs.Is(err, ErrBadResponse))
		var handoff *payment.Handoff
		assert.False(t, errors.As(err, &handoff))
	})
}
