package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module exposes the event publisher to the fx graph.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if p.Config.AMQPURL == "" {
		return NewNopPublisher(p.Logger)
	}
	return NewAMQPPublisher(p.Config.AMQPURL, p.Config.AMQPQueue, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
}
