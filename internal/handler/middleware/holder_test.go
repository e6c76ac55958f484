//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"cardshop/internal/domain/reservation"
	"cardshop/internal/domain/user"
	"cardshop/internal/handler/middleware"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/cookie"
	"cardshop/internal/usecase"
	"cardshop/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	role   user.Role
	err    error
}

func (v stubValidator) ValidateToken(string) (usecase.Caller, error) {
	return usecase.Caller{UserID: v.userID, Role: v.role}, v.err
}

func holderRouter(v stubValidator, seen *reservation.Holder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middleware.NewAuthMiddleware(v)
	r.GET("/h", auth.OptionalAuth(), middleware.ResolveHolder(config.CookieConfig{SameSite: "Lax", CartTTL: time.Hour}), func(c *gin.Context) {
		h, _ := middleware.GetHolder(c)
		*seen = h
		c.Status(http.StatusOK)
	})
	return r
}

func TestResolveHolder(t *testing.T) {
	t.Run("signed in user holds as user", func(t *testing.T) {
		userID := uuid.New()
		var seen reservation.Holder
		r := holderRouter(stubValidator{userID: userID, role: user.RoleCustomer}, &seen)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/h", nil, "token")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reservation.NewUserHolder(userID), seen)
		assert.Nil(t, httptest.ExtractCookie(rec, cookie.CartCookieName))
	})

	t.Run("guest with cart cookie keeps its cart", func(t *testing.T) {
		cartID := uuid.New()
		var seen reservation.Holder
		r := holderRouter(stubValidator{}, &seen)

		rec := httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/h", nil,
			[]*http.Cookie{{Name: cookie.CartCookieName, Value: cartID.String()}}, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reservation.NewGuestHolder(cartID), seen)
	})

	t.Run("guest without cookie gets a new cart", func(t *testing.T) {
		var seen reservation.Holder
		r := holderRouter(stubValidator{}, &seen)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/h", nil, "")

		issued := httptest.ExtractCookie(rec, cookie.CartCookieName)
		require.NotNil(t, issued)
		assert.Equal(t, reservation.HolderGuest, seen.Type)
		assert.Equal(t, issued.Value, seen.Key)
	})

	t.Run("invalid token falls back to guest", func(t *testing.T) {
		var seen reservation.Holder
		r := holderRouter(stubValidator{err: errors.New("expired")}, &seen)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/h", nil, "stale")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reservation.HolderGuest, seen.Type)
	})

	t.Run("malformed cart cookie is replaced", func(t *testing.T) {
		var seen reservation.Holder
		r := holderRouter(stubValidator{}, &seen)

		rec := httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/h", nil,
			[]*http.Cookie{{Name: cookie.CartCookieName, Value: "not-a-uuid"}}, "")

		issued := httptest.ExtractCookie(rec, cookie.CartCookieName)
		require.NotNil(t, issued)
		assert.NotEqual(t, "not-a-uuid", issued.Value)
		assert.Equal(t, issued.Value, seen.Key)
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	testCases := []struct {
		name       string
		role       user.Role
		min        user.Role
		expectCode int
	}{
		{name: "admin passes admin gate", role: user.RoleAdmin, min: user.RoleAdmin, expectCode: http.StatusOK},
		{name: "admin passes staff gate", role: user.RoleAdmin, min: user.RoleStaff, expectCode: http.StatusOK},
		{name: "staff blocked at admin gate", role: user.RoleStaff, min: user.RoleAdmin, expectCode: http.StatusForbidden},
		{name: "customer blocked at staff gate", role: user.RoleCustomer, min: user.RoleStaff, expectCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			auth := middleware.NewAuthMiddleware(stubValidator{userID: uuid.New(), role: tc.role})
			r.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(tc.min), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "token")
			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}

	t.Run("missing token is unauthorized", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		auth := middleware.NewAuthMiddleware(stubValidator{})
		r.GET("/admin", auth.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/admin", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})
}
