package components

import (
	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseSessionsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSessionOptions,
)

var usecaseSessionsModule = fx.Module("usecase/sessions",
	fx.Provide(
		usecase.NewWidgetSessions,
		usecase.NewSessionResolver,
	),
)

func NewSessionOptions(perfect config.PerfectConfig, widget config.WidgetConfig) (usecase.SessionOptions, error) {
	loc, err := perfect.Location()
	if err != nil {
		return usecase.SessionOptions{}, err
	}
	return usecase.SessionOptions{
		TTL: widget.SessionTTL,
		Flow: usecase.FlowOptions{
			Location:      loc,
			SoftLimitDays: widget.SoftLimitDays,
			Timeout:       perfect.RequestTimeout,
		},
	}, nil
}
