package components

import (
	"cardshop/internal/handler"
	"cardshop/internal/handler/api"
	"cardshop/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewInventoryHandler,
		api.NewOrderHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
