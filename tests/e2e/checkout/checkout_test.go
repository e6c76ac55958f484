//go:build e2e

package checkout_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/handler/dto/response"
	"cardshop/tests/common/builder"
	"cardshop/tests/common/dbtest"
	"cardshop/tests/common/httptest"
	"cardshop/tests/e2e"
	"cardshop/tests/e2e/common/helper"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const availabilityURL = "/api/inventory/availability?ids=%s"

type CheckoutSuite struct {
	e2e.SharedSuite
}

func (s *CheckoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

// =============================================================================
// TestStartCheckout - Starting a hosted checkout
// =============================================================================

func (s *CheckoutSuite) TestStartCheckout() {
	s.Run("Normal case: guest receives a cart cookie, a hold and a provider session", func() {
		t := s.T()

		bulkID := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder())
		singleID := dbtest.InsertInventory(t, s.DB, builder.NewSingleBuilder())

		cart := &helper.Cart{}
		first := cart.MustCheckout(t, s.Router, helper.Item(bulkID, 2), helper.Item(singleID, 1))
		require.Len(t, cart.Cookies, 1, "guest should receive a cart cookie")
		cartID := cart.Cookies[0].Value

		w := cart.Checkout(t, s.Router, helper.Item(bulkID, 1))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.Nil(t, httptest.ExtractCookie(w, "cart_id"), "cookie is only issued once")

		require.Equal(t, string(reservation.StatusCancelled),
			dbtest.GetReservationStatus(t, s.DB, uuid.MustParse(first.ReservationID)),
			"the second checkout supersedes the first hold")

		sent, ok := s.Provider.LastRequest()
		require.True(t, ok)
		require.Equal(t, "usd", sent.Currency)
		require.Equal(t, "guest", sent.Metadata.HolderType)
		require.Equal(t, cartID, sent.Metadata.HolderKey)
		require.Len(t, sent.LineItems, 1)
		require.Equal(t, bulkID, sent.LineItems[0].InventoryID)
		require.EqualValues(t, 150, sent.LineItems[0].UnitAmount, "price comes from live inventory")
	})

	s.Run("Normal case: response carries the redirect and expiry", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder())

		cart := &helper.Cart{}
		resp := cart.MustCheckout(t, s.Router, helper.Item(id, 1))

		require.Contains(t, resp.RedirectURL, resp.SessionID)
		require.Positive(t, resp.ExpiresAt)
		require.Equal(t, string(reservation.StatusActive),
			dbtest.GetReservationStatus(t, s.DB, uuid.MustParse(resp.ReservationID)))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "payment_session_id = $1", resp.SessionID))
	})

	s.Run("Error case: single held by another buyer", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewSingleBuilder())
		(&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))

		w := (&helper.Cart{}).Checkout(t, s.Router, helper.Item(id, 1))
		httptest.AssertErrorCode(t, w, http.StatusConflict, "already_reserved")
	})

	s.Run("Error case: bulk request above effective availability", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder().With(func(b *builder.InventoryBuilder) {
			b.Stock = 3
		}))
		(&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 2))

		w := (&helper.Cart{}).Checkout(t, s.Router, helper.Item(id, 2))
		httptest.AssertErrorCode(t, w, http.StatusConflict, "insufficient_stock")

		w = (&helper.Cart{}).Checkout(t, s.Router, helper.Item(id, 1))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = (&helper.Cart{}).Checkout(t, s.Router, helper.Item(id, 1))
		httptest.AssertErrorCode(t, w, http.StatusConflict, "out_of_stock")
	})

	s.Run("Error case: inactive and unknown records are unavailable", func() {
		t := s.T()

		inactive := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder().With(func(b *builder.InventoryBuilder) {
			b.IsActive = false
		}))

		w := (&helper.Cart{}).Checkout(t, s.Router, helper.Item(inactive, 1))
		httptest.AssertErrorCode(t, w, http.StatusConflict, "unavailable")

		w = (&helper.Cart{}).Checkout(t, s.Router, helper.Item(uuid.New(), 1))
		httptest.AssertErrorCode(t, w, http.StatusConflict, "unavailable")
	})

	s.Run("Error case: provider failure releases the hold", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewSingleBuilder())
		s.Provider.FailWith(http.StatusServiceUnavailable)

		w := (&helper.Cart{}).Checkout(t, s.Router, helper.Item(id, 1))
		httptest.AssertErrorCode(t, w, http.StatusBadGateway, "payment_unavailable")
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "reservations", "status = 'active'"))

		s.Provider.FailWith(0)
		(&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))
	})

	s.Run("Error case: empty cart", func() {
		t := s.T()

		w := (&helper.Cart{}).Checkout(t, s.Router)
		httptest.AssertErrorCode(t, w, http.StatusBadRequest, "invalid_cart")
	})
}

// =============================================================================
// TestReservationLifecycle - Reading, cancelling and expiring holds
// =============================================================================

func (s *CheckoutSuite) TestReservationLifecycle() {
	s.Run("Normal case: holder sees and cancels the current hold", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder())
		cart := &helper.Cart{}
		started := cart.MustCheckout(t, s.Router, helper.Item(id, 2))

		w := cart.Do(t, s.Router, http.MethodGet, helper.ReservationPath)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		want := response.ReservationResponse{
			ID:               started.ReservationID,
			Status:           string(reservation.StatusActive),
			Items:            []*response.ReservationItemResponse{{InventoryID: id.String(), Quantity: 2}},
			ExpiresAt:        started.ExpiresAt,
			PaymentSessionID: &started.SessionID,
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(response.ReservationResponse{}, "CreatedAt")); diff != "" {
			t.Errorf("reservation mismatch (-want +got):\n%s", diff)
		}

		w = cart.Do(t, s.Router, http.MethodDelete, helper.ReservationPath+"/"+started.ReservationID)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = cart.Do(t, s.Router, http.MethodGet, helper.ReservationPath)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "No active reservation")

		w = cart.Do(t, s.Router, http.MethodDelete, helper.ReservationPath+"/"+started.ReservationID)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: another holder cannot cancel the hold", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder())
		started := (&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))

		w := (&helper.Cart{}).Do(t, s.Router, http.MethodDelete, helper.ReservationPath+"/"+started.ReservationID)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
		require.Equal(t, string(reservation.StatusActive),
			dbtest.GetReservationStatus(t, s.DB, uuid.MustParse(started.ReservationID)))
	})

	s.Run("Normal case: lapsed holds stop counting and are swept", func() {
		t := s.T()

		id := dbtest.InsertInventory(t, s.DB, builder.NewSingleBuilder())
		started := (&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))

		items := s.availability(id)
		require.True(t, items[0].Held)
		require.Zero(t, items[0].Available)

		reservationID := uuid.MustParse(started.ReservationID)
		dbtest.ExpireReservation(t, s.DB, reservationID)

		items = s.availability(id)
		require.False(t, items[0].Held)
		require.Equal(t, 1, items[0].Available)

		n, err := s.Sweeper.SweepExpired(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
		require.Equal(t, string(reservation.StatusExpired), dbtest.GetReservationStatus(t, s.DB, reservationID))

		(&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))
	})
}

func (s *CheckoutSuite) availability(ids ...uuid.UUID) []*response.AvailabilityResponse {
	t := s.T()

	raw := ""
	for i, id := range ids {
		if i > 0 {
			raw += ","
		}
		raw += id.String()
	}

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, raw), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Items []*response.AvailabilityResponse `json:"items"`
	}
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	require.Len(t, body.Items, len(ids))
	return body.Items
}

// =============================================================================
// TestServiceEndpoints - Health, metrics and request ids
// =============================================================================

func (s *CheckoutSuite) TestServiceEndpoints() {
	s.Run("Normal case: request id is echoed and checkouts are counted", func() {
		t := s.T()

		w := httptest.PerformRawRequest(t, s.Router, http.MethodGet, "/health", nil, map[string]string{
			"X-Request-ID": "req-e2e-1",
		})
		require.Equal(t, http.StatusOK, w.Code)
		httptest.AssertHeaders(t, w, map[string]string{"X-Request-ID": "req-e2e-1"})

		id := dbtest.InsertInventory(t, s.DB, builder.NewInventoryBuilder())
		(&helper.Cart{}).MustCheckout(t, s.Router, helper.Item(id, 1))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/metrics", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, `cardshop_checkouts_total{outcome="session"}`)
		require.Contains(t, body, "cardshop_http_request_duration_seconds")
	})
}
