package app

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
	"github.com/polkiloo/mysticmart/internal/usecase"
	"github.com/polkiloo/mysticmart/internal/worker"
)

var _ usecase.Notifier = (*worker.Signal)(nil)

func newTestDispatcher(outbox *testhelpers.OutboxRepositoryStub) *worker.OutboxDispatcher {
	return worker.NewOutboxDispatcher(outbox, &testhelpers.EventHandlerStub{}, nil, worker.Options{PollInterval: 10 * time.Millisecond}, testLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewOutboxDispatcherUsesConfig(t *testing.T) {
	var limit atomic.Int64
	claimed := make(chan struct{}, 1)
	outbox := &testhelpers.OutboxRepositoryStub{ClaimFn: func(ctx context.Context, n int) ([]model.OutboxEvent, error) {
		limit.Store(int64(n))
		select {
		case claimed <- struct{}{}:
		default:
		}
		return nil, nil
	}}
	signal := worker.NewSignal()

	dispatcher := newOutboxDispatcher(dispatcherParams{
		Outbox: outbox,
		Signal: signal,
		Config: &config.Config{OutboxPollInterval: time.Hour, OutboxBatchSize: 3, WorkerPoolSize: 2, OutboxMaxAttempts: 4},
		Logger: testLogger(),
	})
	dispatcher.Start(context.Background())
	t.Cleanup(dispatcher.Stop)

	signal.Notify()
	select {
	case <-claimed:
	case <-time.After(time.Second):
		t.Fatal("expected the signal to trigger a claim")
	}
	if got := limit.Load(); got != 3 {
		t.Fatalf("expected batch size 3, got %d", got)
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	f := newFacade()
	cfg := testConfig()
	cfg.ShutdownTimeout = 100 * time.Millisecond
	cfg.AdminEmail = "root@example.com"
	cfg.AdminPassword = "sup3r-secret"

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     server,
		Dispatcher: newTestDispatcher(&testhelpers.OutboxRepositoryStub{}),
		Facade:     f.facade,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if _, ok := f.admins.Admins["root@example.com"]; !ok {
		t.Fatal("expected bootstrap admin to be seeded on start")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleBootstrapFailureAbortsStart(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	cfg := testConfig()
	cfg.AdminEmail = "not-an-email"
	cfg.AdminPassword = "secret"

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)},
		Logger:     testLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0"},
		Dispatcher: newTestDispatcher(&testhelpers.OutboxRepositoryStub{}),
		Facade:     newFacade().facade,
		Config:     cfg,
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); err == nil {
		t.Fatal("expected invalid bootstrap email to fail start")
	}
}

func TestRegisterLifecycleWarnsOnDefaultSessionSecret(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	var logs bytes.Buffer
	cfg := testConfig()
	cfg.SessionSecret = "change-me-in-production"
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)},
		Logger:     slog.New(slog.NewJSONHandler(&logs, nil)),
		Server:     server,
		Dispatcher: newTestDispatcher(&testhelpers.OutboxRepositoryStub{}),
		Facade:     newFacade().facade,
		Config:     cfg,
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	_ = hook.OnStop(context.Background())

	if !strings.Contains(logs.String(), "SESSION_SECRET is not set") {
		t.Fatalf("expected default secret warning, got %s", logs.String())
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Dispatcher: newTestDispatcher(&testhelpers.OutboxRepositoryStub{}),
		Facade:     newFacade().facade,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}
