package api

import (
	"net/http"

	reqdto "cardshop/internal/handler/dto/request"
	resdto "cardshop/internal/handler/dto/response"
	"cardshop/internal/handler/httperr"
	"cardshop/internal/handler/middleware"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"
	"cardshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errHolderMissing = errs.New("reservation holder missing from context")

type CheckoutHandler struct {
	checkout     commands.CheckoutCommands
	reservations commands.ReservationCommands
	q            queries.ReservationQueries
}

func NewCheckoutHandler(checkout commands.CheckoutCommands, reservations commands.ReservationCommands, q queries.ReservationQueries) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, reservations: reservations, q: q}
}

// @Summary Start checkout
// @Description Hold the cart items and open a hosted payment session
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Cart"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	holder, ok := middleware.GetHolder(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errHolderMissing, "Internal error", nil)
		return
	}
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithCode(c, http.StatusBadRequest, err, codeInvalidCart, "Invalid request", nil)
		return
	}
	result, err := h.checkout.StartCheckout(c.Request.Context(), holder, req.ToCommand())
	if err != nil {
		abortCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Current reservation
// @Description Show the caller's active hold, if any
// @Tags checkout
// @Produce json
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /checkout/reservation [get]
func (h *CheckoutHandler) CurrentReservation(c *gin.Context) {
	holder, ok := middleware.GetHolder(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errHolderMissing, "Internal error", nil)
		return
	}
	res, err := h.q.CurrentReservation(c.Request.Context(), holder)
	if err != nil {
		if errs.Is(err, queries.ErrNoActiveReservation) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No active reservation", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cancel reservation
// @Description Release the caller's hold before it expires
// @Tags checkout
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/reservation/{id} [delete]
func (h *CheckoutHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	holder, ok := middleware.GetHolder(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errHolderMissing, "Internal error", nil)
		return
	}
	if err := h.reservations.CancelReservation(c.Request.Context(), holder, id); err != nil {
		switch {
		case errs.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errs.Is(err, commands.ErrReservationNotActive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is no longer active", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
