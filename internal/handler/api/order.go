package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"cardshop/internal/domain/order"
	reqdto "cardshop/internal/handler/dto/request"
	resdto "cardshop/internal/handler/dto/response"
	"cardshop/internal/handler/httperr"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"
	"cardshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	o, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

// @Summary List orders
// @Description Newest first with keyset pagination
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {array} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Router /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	orders, next, err := h.q.List(c.Request.Context(), queries.OrderFilters{Status: c.Query("status")}, cursor, limit)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrInvalidStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
		case errs.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		default:
			slog.Error("list orders failed", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	resp := gin.H{"orders": resdto.FromOrderList(orders)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Mark order paid
// @Description For orders whose payment settled after the session completed
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Router /admin/orders/{id}/pay [post]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.cmds.MarkPaid)
}

// @Summary Fulfil order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Router /admin/orders/{id}/fulfil [post]
func (h *OrderHandler) Fulfil(c *gin.Context) {
	h.transition(c, h.cmds.MarkFulfilled)
}

// @Summary Cancel order
// @Description Cancelling a paid order returns its items to stock
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Router /admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

// @Summary Refund order
// @Description Full refund when amount is omitted or covers the total, otherwise partial
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.RefundRequest false "Refund amount"
// @Success 200 {object} resdto.RefundResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.RefundRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
	}
	outcome, err := h.cmds.Refund(c.Request.Context(), id, req.GetAmount())
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundOutcome(outcome))
}

func (h *OrderHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*order.Order, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	o, err := apply(c.Request.Context(), id)
	if err != nil {
		abortOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}
