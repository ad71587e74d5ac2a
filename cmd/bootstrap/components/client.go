package components

import (
	"log/slog"

	"perfect-widget/internal/infra/perfectapi"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/usecase"

	"go.uber.org/fx"
)

var ClientModule = fx.Module("client",
	fx.Provide(
		NewPerfectClient,
		fx.Annotate(
			func(c *perfectapi.Client) *perfectapi.Client { return c },
			fx.As(new(usecase.Authenticator)),
			fx.As(new(usecase.AvailabilityClient)),
			fx.As(new(usecase.BookingClient)),
		),
	),
)

func NewPerfectClient(cfg config.PerfectConfig, logger *slog.Logger) (*perfectapi.Client, error) {
	client, err := perfectapi.NewClient(cfg, logger.With(slog.String("component", "perfectapi")))
	if err != nil {
		return nil, err
	}
	logger.Info("Perfect API client configured", "base_url", cfg.BaseURL, "version", client.Protocol().Version())
	return client, nil
}
