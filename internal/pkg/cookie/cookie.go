package cookie

import (
	"net/http"

	"cardshop/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	AccessTokenCookieName = "access_token"
	CartCookieName        = "cart_id"
)

// SetCartID issues the guest cart cookie. The cart id is the key of guest
// holds, so it is HttpOnly.
func SetCartID(c *gin.Context, cfg config.CookieConfig, cartID uuid.UUID) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		CartCookieName,
		cartID.String(),
		int(cfg.CartTTL.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

// GetCartID returns the guest cart id, or false when the cookie is missing
// or not a uuid.
func GetCartID(c *gin.Context) (uuid.UUID, bool) {
	raw, err := c.Cookie(CartCookieName)
	if err != nil || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
