package shiprocket

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module exposes the shipping provider to the fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) (Provider, error) {
	return NewHTTPClient(p.Config.ShiprocketAPIURL, Credentials{
		Email:          p.Config.ShiprocketEmail,
		Password:       p.Config.ShiprocketPassword,
		PickupLocation: p.Config.ShiprocketPickupLocation,
	}, p.Logger)
}
