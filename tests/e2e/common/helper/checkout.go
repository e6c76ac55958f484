//go:build e2e

package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cardshop/internal/handler/dto/request"
	"cardshop/internal/handler/dto/response"
	commonhttp "cardshop/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	CheckoutPath    = "/api/checkout"
	ReservationPath = "/api/checkout/reservation"
)

// Cart is a browser session: it carries the cart cookie between requests
// and, optionally, a bearer token.
type Cart struct {
	Cookies []*http.Cookie
	Token   string
}

func Item(inventoryID uuid.UUID, quantity int) request.CartItem {
	return request.CartItem{InventoryID: inventoryID, Quantity: quantity}
}

// Checkout posts the cart and keeps any cookie the server issued.
func (c *Cart) Checkout(t *testing.T, router *gin.Engine, items ...request.CartItem) *httptest.ResponseRecorder {
	t.Helper()
	w := commonhttp.PerformRequestWithCookies(t, router, http.MethodPost, CheckoutPath,
		request.CheckoutRequest{Items: items}, c.Cookies, c.Token)
	c.keep(w)
	return w
}

// MustCheckout is Checkout for the happy path.
func (c *Cart) MustCheckout(t *testing.T, router *gin.Engine, items ...request.CartItem) response.CheckoutResponse {
	t.Helper()
	w := c.Checkout(t, router, items...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.CheckoutResponse
	require.NoError(t, commonhttp.DecodeResponseBody(t, w.Body, &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp
}

func (c *Cart) Do(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := commonhttp.PerformRequestWithCookies(t, router, method, path, nil, c.Cookies, c.Token)
	c.keep(w)
	return w
}

func (c *Cart) keep(w *httptest.ResponseRecorder) {
	for _, issued := range commonhttp.ExtractCookies(w) {
		replaced := false
		for i, existing := range c.Cookies {
			if existing.Name == issued.Name {
				c.Cookies[i] = issued
				replaced = true
			}
		}
		if !replaced {
			c.Cookies = append(c.Cookies, issued)
		}
	}
}
