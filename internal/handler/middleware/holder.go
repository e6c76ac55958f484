package middleware

import (
	"cardshop/internal/domain/reservation"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxHolderKey = "reservation_holder"

// ResolveHolder decides who owns holds made by this request: the signed-in
// user, or else the guest cart from the cart_id cookie, issuing a new cart
// when the cookie is missing. Must run after OptionalAuth.
func ResolveHolder(cfg config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			c.Set(ctxHolderKey, reservation.NewUserHolder(userID))
			c.Next()
			return
		}

		cartID, ok := cookie.GetCartID(c)
		if !ok {
			cartID = uuid.New()
			cookie.SetCartID(c, cfg, cartID)
		}
		c.Set(ctxHolderKey, reservation.NewGuestHolder(cartID))
		c.Next()
	}
}

func GetHolder(c *gin.Context) (reservation.Holder, bool) {
	v, exists := c.Get(ctxHolderKey)
	if !exists {
		return reservation.Holder{}, false
	}
	h, ok := v.(reservation.Holder)
	return h, ok
}
