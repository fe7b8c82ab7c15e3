package components

import (
	"rinkbook/internal/handler"
	"rinkbook/internal/handler/api"
	"rinkbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewFacilityHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewSlotHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
