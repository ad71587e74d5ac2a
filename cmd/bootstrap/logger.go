package bootstrap

import (
	"log/slog"

	"perfect-widget/internal/handler/middleware"
	"perfect-widget/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		func(cfg config.Config) *slog.Logger {
			return middleware.NewLogger(cfg.Log)
		},
	),
)
