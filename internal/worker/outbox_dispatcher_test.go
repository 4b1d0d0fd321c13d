package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/mysticmart/internal/adapter/httpx"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewOutboxDispatcherDefaults(t *testing.T) {
	d := NewOutboxDispatcher(&testhelpers.OutboxRepositoryStub{}, &testhelpers.EventHandlerStub{}, nil, Options{}, discardLogger())
	if d.opts.BatchSize != 1 || d.opts.Workers != 1 || d.opts.MaxAttempts != 1 {
		t.Fatalf("unexpected defaults %+v", d.opts)
	}
	if d.opts.PollInterval != time.Second {
		t.Fatalf("expected default poll interval, got %v", d.opts.PollInterval)
	}
	if d.signal == nil {
		t.Fatal("expected a signal")
	}
}

func TestOutboxDispatcherSettlesEvents(t *testing.T) {
	queue := &testhelpers.OutboxRepositoryStub{ClaimFn: testhelpers.ClaimOnce([]model.OutboxEvent{
		{ID: 1, Kind: model.EventShipmentCreate, Attempts: 1},
		{ID: 2, Kind: model.EventOrderConfirmationEmail, Attempts: 1},
		{ID: 3, Kind: model.EventOrderPaid, Attempts: 3},
		{ID: 4, Kind: "unknown", Attempts: 1},
	})}
	handler := &testhelpers.EventHandlerStub{HandleFn: func(_ context.Context, ev model.OutboxEvent) error {
		switch ev.ID {
		case 2:
			return errors.New("smtp timeout")
		case 3:
			return errors.New("broker down")
		case 4:
			return fmt.Errorf("unknown kind: %w", domainErrors.ErrPermanent)
		}
		return nil
	}}
	d := NewOutboxDispatcher(queue, handler, nil, Options{PollInterval: 5 * time.Millisecond, BatchSize: 4, Workers: 2, MaxAttempts: 3}, discardLogger())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	d.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		done, retried, failed := queue.Snapshot()
		return len(done)+len(retried)+len(failed) == 4
	})
	d.Stop()

	done, retried, failed := queue.Snapshot()
	if len(done) != 1 || done[0] != 1 {
		t.Fatalf("unexpected done %v", done)
	}
	if len(retried) != 1 || retried[0].ID != 2 {
		t.Fatalf("unexpected retries %+v", retried)
	}
	if want := now.Add(retryStep); !retried[0].At.Equal(want) {
		t.Fatalf("expected retry at %v, got %v", want, retried[0].At)
	}
	if len(failed) != 2 {
		t.Fatalf("expected exhausted and permanent failures, got %+v", failed)
	}
}

func TestOutboxDispatcherAllowsEveryConfiguredAttempt(t *testing.T) {
	queue := &testhelpers.OutboxRepositoryStub{ClaimFn: testhelpers.ClaimOnce(
		[]model.OutboxEvent{{ID: 1, Kind: model.EventShipmentCreate, Attempts: 1}},
		[]model.OutboxEvent{{ID: 1, Kind: model.EventShipmentCreate, Attempts: 2}},
	)}
	handler := &testhelpers.EventHandlerStub{HandleFn: func(context.Context, model.OutboxEvent) error {
		return errors.New("shiprocket unavailable")
	}}
	d := NewOutboxDispatcher(queue, handler, nil, Options{PollInterval: 5 * time.Millisecond, MaxAttempts: 2}, discardLogger())

	d.Start(context.Background())
	waitFor(t, time.Second, func() bool {
		_, _, failed := queue.Snapshot()
		return len(failed) == 1
	})
	d.Stop()

	_, retried, _ := queue.Snapshot()
	if handler.Count() != 2 {
		t.Fatalf("expected two handler calls, got %d", handler.Count())
	}
	if len(retried) != 1 || retried[0].ID != 1 {
		t.Fatalf("expected first failure to be retried, got %+v", retried)
	}
}

func TestOutboxDispatcherRestartsAfterStop(t *testing.T) {
	queue := &testhelpers.OutboxRepositoryStub{ClaimFn: testhelpers.ClaimOnce(
		[]model.OutboxEvent{{ID: 5, Kind: model.EventVerifyEmail, Attempts: 1}},
	)}
	handler := &testhelpers.EventHandlerStub{}
	signal := NewSignal()
	d := NewOutboxDispatcher(queue, handler, signal, Options{PollInterval: time.Hour}, discardLogger())

	d.Start(context.Background())
	d.Start(context.Background())
	d.Stop()

	d.Start(context.Background())
	signal.Notify()
	waitFor(t, time.Second, func() bool {
		done, _, _ := queue.Snapshot()
		return len(done) == 1
	})
	d.Stop()
}

func TestOutboxDispatcherWakesOnSignal(t *testing.T) {
	queue := &testhelpers.OutboxRepositoryStub{ClaimFn: testhelpers.ClaimOnce(
		[]model.OutboxEvent{{ID: 9, Kind: model.EventVerifyEmail}},
	)}
	handler := &testhelpers.EventHandlerStub{}
	signal := NewSignal()
	d := NewOutboxDispatcher(queue, handler, signal, Options{PollInterval: time.Hour}, discardLogger())

	d.Start(context.Background())
	signal.Notify()
	waitFor(t, time.Second, func() bool { return handler.Count() == 1 })
	d.Stop()

	done, _, _ := queue.Snapshot()
	if len(done) != 1 || done[0] != 9 {
		t.Fatalf("unexpected done %v", done)
	}
}

func TestOutboxDispatcherStopIsIdempotent(t *testing.T) {
	d := NewOutboxDispatcher(&testhelpers.OutboxRepositoryStub{}, &testhelpers.EventHandlerStub{}, nil, Options{PollInterval: time.Millisecond}, discardLogger())
	d.Start(context.Background())
	d.Stop()
	d.Stop()
}

func TestBackoff(t *testing.T) {
	cases := []struct {
		attempts int
		err      error
		want     time.Duration
	}{
		{1, errors.New("x"), 15 * time.Second},
		{4, errors.New("x"), time.Minute},
		{100, errors.New("x"), maxRetryDelay},
		{1, httpx.RateLimitError{RetryAfter: time.Minute, Err: errors.New("429")}, time.Minute},
		{8, fmt.Errorf("wrapped: %w", httpx.RateLimitError{RetryAfter: time.Second}), 2 * time.Minute},
	}
	for _, tc := range cases {
		if got := backoff(tc.attempts, tc.err); got != tc.want {
			t.Errorf("backoff(%d, %v) = %v, want %v", tc.attempts, tc.err, got, tc.want)
		}
	}
}

func TestSignalCoalesces(t *testing.T) {
	s := NewSignal()
	s.Notify()
	s.Notify()
	<-s.C()
	select {
	case <-s.C():
		t.Fatal("expected a single pending wake-up")
	default:
	}
}
