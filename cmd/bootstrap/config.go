package bootstrap

import (
	"perfect-widget/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the sections components depend on directly.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.PerfectConfig { return cfg.Perfect },
	func(cfg config.Config) config.WidgetConfig { return cfg.Widget },
)
