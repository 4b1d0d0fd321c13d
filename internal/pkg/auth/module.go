package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenIssuer),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type tokenParams struct {
	fx.In

	Config *config.Config
}

func newTokenIssuer(p tokenParams) TokenIssuer {
	return NewSignedTokens(p.Config.SessionSecret)
}
