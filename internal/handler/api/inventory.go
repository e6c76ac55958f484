package api

import (
	"net/http"
	"strings"

	resdto "cardshop/internal/handler/dto/response"
	"cardshop/internal/handler/httperr"
	"cardshop/internal/pkg/errs"
	"cardshop/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvailabilityIDs = 100

var errNoIDs = errs.New("ids query parameter is required")

type InventoryHandler struct {
	q queries.InventoryQueries
}

func NewInventoryHandler(q queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{q: q}
}

// @Summary Inventory availability
// @Description Stock left after active holds, for a comma separated list of inventory ids
// @Tags inventory
// @Produce json
// @Param ids query string true "Comma separated inventory ids"
// @Success 200 {array} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /inventory/availability [get]
func (h *InventoryHandler) Availability(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ids", nil)
		return
	}
	views, err := h.q.Availability(c.Request.Context(), ids)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resdto.FromAvailabilityList(views)})
}

func parseIDList(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errNoIDs
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxAvailabilityIDs {
		return nil, errs.Newf("at most %d ids per request", maxAvailabilityIDs)
	}
	seen := make(map[uuid.UUID]struct{}, len(parts))
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, errs.Wrapf(err, "invalid id %q", p)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
