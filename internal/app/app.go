package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
	"github.com/polkiloo/mysticmart/internal/server/http/handlers"
	"github.com/polkiloo/mysticmart/internal/usecase"
	"github.com/polkiloo/mysticmart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		worker.NewSignal,
		func(s *worker.Signal) usecase.Notifier { return s },
		newHTTPServer,
		newOutboxDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Outbox  repository.OutboxRepository
	Handler *usecase.FulfillmentUseCase
	Signal  *worker.Signal
	Config  *config.Config
	Logger  *slog.Logger
}

func newOutboxDispatcher(p dispatcherParams) *worker.OutboxDispatcher {
	return worker.NewOutboxDispatcher(p.Outbox, p.Handler, p.Signal, worker.Options{
		PollInterval: p.Config.OutboxPollInterval,
		BatchSize:    p.Config.OutboxBatchSize,
		Workers:      p.Config.WorkerPoolSize,
		MaxAttempts:  p.Config.OutboxMaxAttempts,
	}, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.OutboxDispatcher
	Facade     *StoreFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.UsesDefaultSessionSecret() {
				p.Logger.Warn("SESSION_SECRET is not set, signed tokens use the development default")
			}
			if p.Config.AdminEmail != "" {
				if _, err := p.Facade.EnsureBootstrapAdmin(ctx, p.Config.AdminEmail, p.Config.AdminPassword); err != nil {
					return fmt.Errorf("bootstrap admin: %w", err)
				}
			}

			p.Logger.Info("starting mysticmart", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Dispatcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("mysticmart stopped")
			return nil
		},
	})
}
