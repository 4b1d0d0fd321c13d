package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

const namespace = "mysticmart"

// Module exposes the catalog cache to the fx graph.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Invoke(registerLifecycle),
)

type cacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("redis not configured, catalog cache disabled")
		return NewNop(namespace)
	}
	return NewRedisCache(p.Config.RedisAddr, p.Config.RedisPassword, namespace)
}

func registerLifecycle(lc fx.Lifecycle, c Cache) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
}
