package handler

import (
	"net/http"

	"cardshop/internal/domain/user"
	"cardshop/internal/handler/api"
	"cardshop/internal/handler/middleware"
	"cardshop/internal/infra/metrics"
	"cardshop/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Checkout  *api.CheckoutHandler
	Webhook   *api.WebhookHandler
	Inventory *api.InventoryHandler
	Order     *api.OrderHandler
}

func NewHandlers(checkout *api.CheckoutHandler, webhook *api.WebhookHandler, inventory *api.InventoryHandler, order *api.OrderHandler) Handlers {
	return Handlers{Checkout: checkout, Webhook: webhook, Inventory: inventory, Order: order}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, recorder *metrics.Recorder, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger, recorder)
	setupRoutes(engine, cfg, recorder, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, recorder *metrics.Recorder) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(recorder))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, recorder *metrics.Recorder, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(recorder.Registry(), promhttp.HandlerOpts{})))

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/inventory/availability", Handler: h.Inventory.Availability},
			{Method: http.MethodPost, Path: "/webhooks/payments", Handler: h.Webhook.Payments},
		})

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.OptionalAuth(), middleware.ResolveHolder(cfg.Cookie))
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Checkout.Start},
				{Method: http.MethodGet, Path: "/reservation", Handler: h.Checkout.CurrentReservation},
				{Method: http.MethodDelete, Path: "/reservation/:id", Handler: h.Checkout.CancelReservation},
			})
		}

		adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}
		orders := apiGroup.Group("/admin/orders")
		orders.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleStaff))
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: h.Order.MarkPaid, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/fulfil", Handler: h.Order.Fulfil},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/refund", Handler: h.Order.Refund, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
