package components

import (
	"perfect-widget/internal/handler"
	"perfect-widget/internal/handler/api"
	"perfect-widget/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWidgetHandler,
		middleware.NewSessionMiddleware,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
