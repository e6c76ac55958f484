package api

import (
	"errors"
	"net/http"

	"cardshop/internal/domain/inventory"
	"cardshop/internal/domain/order"
	"cardshop/internal/domain/reservation"
	"cardshop/internal/handler/httperr"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	codeOutOfStock         = "out_of_stock"
	codeInsufficientStock  = "insufficient_stock"
	codeAlreadyReserved    = "already_reserved"
	codeUnavailable        = "unavailable"
	codeInvalidCart        = "invalid_cart"
	codeReservationBusy    = "reservation_conflict"
	codePaymentUnavailable = "payment_unavailable"
	codeCheckoutFailed     = "checkout_failed"
	codeInvalidTransition  = "invalid_transition"
	codeStatusConflict     = "status_conflict"
	codeInvalidAmount      = "invalid_amount"
)

func availabilityCode(err error) string {
	switch {
	case errors.Is(err, inventory.ErrOutOfStock):
		return codeOutOfStock
	case errors.Is(err, inventory.ErrInsufficientStock):
		return codeInsufficientStock
	case errors.Is(err, inventory.ErrAlreadyReserved):
		return codeAlreadyReserved
	default:
		return codeUnavailable
	}
}

func isCartValidation(err error) bool {
	return errs.Is(err, reservation.ErrEmptyItems) ||
		errs.Is(err, reservation.ErrInvalidQuantity) ||
		errs.Is(err, reservation.ErrInvalidItem) ||
		errs.Is(err, reservation.ErrTooManyItems) ||
		errs.Is(err, reservation.ErrInvalidHolder)
}

// abortCheckoutError covers failures of both reservation creation and the
// payment handoff that follows it.
func abortCheckoutError(c *gin.Context, err error) {
	var itemErr *commands.ItemAvailabilityError
	switch {
	case errors.As(err, &itemErr):
		httperr.AbortWithCode(c, http.StatusConflict, err, availabilityCode(itemErr.Err),
			"Item is not available", gin.H{"inventory_id": itemErr.InventoryID.String()})
	case isCartValidation(err):
		httperr.AbortWithCode(c, http.StatusBadRequest, err, codeInvalidCart, "Invalid cart", nil)
	case errs.Is(err, commands.ErrReservationConflict):
		httperr.AbortWithCode(c, http.StatusConflict, err, codeReservationBusy, "Another checkout is in progress", nil)
	case errs.Is(err, commands.ErrPaymentGateway):
		httperr.AbortWithCode(c, http.StatusBadGateway, err, codePaymentUnavailable, "Payment provider unavailable", nil)
	default:
		httperr.AbortWithCode(c, http.StatusInternalServerError, err, codeCheckoutFailed, "Checkout failed", nil)
	}
}

func abortOrderError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrOrderNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errs.Is(err, order.ErrInvalidTransition):
		httperr.AbortWithCode(c, http.StatusConflict, err, codeInvalidTransition, "Order cannot move to that status", nil)
	case errs.Is(err, commands.ErrOrderStatusConflict):
		httperr.AbortWithCode(c, http.StatusConflict, err, codeStatusConflict, "Order was modified concurrently", nil)
	case errs.Is(err, order.ErrInvalidAmount):
		httperr.AbortWithCode(c, http.StatusBadRequest, err, codeInvalidAmount, "Invalid refund amount", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
