package bootstrap

import (
	"perfect-widget/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.ClientModule,
	components.UseCaseModule,
	components.HandlerModule,
)
