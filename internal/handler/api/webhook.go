package api

import (
	"net/http"

	"cardshop/internal/handler/httperr"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "Payment-Signature"
	maxEventBytes   = 1 << 20
)

type WebhookHandler struct {
	events commands.PaymentEventCommands
}

func NewWebhookHandler(events commands.PaymentEventCommands) *WebhookHandler {
	return &WebhookHandler{events: events}
}

// @Summary Payment provider webhook
// @Description Verify and apply a payment event. Non-2xx responses make the provider retry.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Payment-Signature header string true "t=<unix>,v1=<hex>"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /webhooks/payments [post]
func (h *WebhookHandler) Payments(c *gin.Context) {
	// The signature covers the exact bytes sent, so the body is read raw.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBytes)
	payload, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	outcome, err := h.events.HandleEvent(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidSignature):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", nil)
		case errs.Is(err, commands.ErrMalformedPayload):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed event", nil)
		case errs.Is(err, commands.ErrEventInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "Event is being processed", nil)
		case errs.Is(err, commands.ErrItemsUnresolved):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Order items unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "outcome": string(outcome)})
}
