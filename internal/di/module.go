package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/adapter/broker"
	"github.com/polkiloo/mysticmart/internal/adapter/cache"
	"github.com/polkiloo/mysticmart/internal/adapter/mailer"
	"github.com/polkiloo/mysticmart/internal/adapter/oauth"
	"github.com/polkiloo/mysticmart/internal/adapter/razorpay"
	"github.com/polkiloo/mysticmart/internal/adapter/shiprocket"
	"github.com/polkiloo/mysticmart/internal/app"
	"github.com/polkiloo/mysticmart/internal/config"
	"github.com/polkiloo/mysticmart/internal/logger"
	"github.com/polkiloo/mysticmart/internal/pkg/auth"
	"github.com/polkiloo/mysticmart/internal/server/http/router"
	"github.com/polkiloo/mysticmart/internal/storage/postgres"
	"github.com/polkiloo/mysticmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		broker.Module,
		mailer.Module,
		oauth.Module,
		razorpay.Module,
		shiprocket.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
