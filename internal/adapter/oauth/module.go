package oauth

import (
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module exposes the OAuth provider to the fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
}

func newProvider(p providerParams) Provider {
	return NewGoogle(Settings{
		ClientID:      p.Config.GoogleClientID,
		ClientSecret:  p.Config.GoogleClientSecret,
		BaseURL:       p.Config.BaseURL,
		SessionSecret: p.Config.SessionSecret,
		SecureCookies: strings.HasPrefix(p.Config.BaseURL, "https://"),
	})
}
