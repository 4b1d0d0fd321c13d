package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/mysticmart/internal/adapter/httpx"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

const (
	retryStep     = 15 * time.Second
	maxRetryDelay = 10 * time.Minute
)

// Queue is the subset of the outbox store the dispatcher drives.
type Queue interface {
	ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkDone(ctx context.Context, id int64) error
	Retry(ctx context.Context, id int64, cause string, at time.Time) error
	Fail(ctx context.Context, id int64, cause string) error
}

// Handler performs the side effect of one event.
type Handler interface {
	Handle(ctx context.Context, event model.OutboxEvent) error
}

// Options tune the dispatcher. Zero values fall back to safe minimums.
type Options struct {
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxAttempts  int
}

// OutboxDispatcher claims due outbox events and hands them to a pool of workers.
type OutboxDispatcher struct {
	queue   Queue
	handler Handler
	signal  *Signal
	opts    Options
	logger  *slog.Logger
	now     func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxDispatcher constructs the dispatcher. signal may be nil, in which case only the ticker drives polling.
func NewOutboxDispatcher(queue Queue, handler Handler, signal *Signal, opts Options, logger *slog.Logger) *OutboxDispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if signal == nil {
		signal = NewSignal()
	}
	return &OutboxDispatcher{
		queue:   queue,
		handler: handler,
		signal:  signal,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Start launches background processing. Events are also picked up immediately on Signal.Notify.
// A running dispatcher ignores Start; a stopped one can be started again.
func (d *OutboxDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	jobs := make(chan model.OutboxEvent, d.opts.BatchSize*d.opts.Workers)

	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, jobs)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx, jobs)
}

// Stop waits for in-flight events to finish.
func (d *OutboxDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *OutboxDispatcher) dispatch(ctx context.Context, jobs chan<- model.OutboxEvent) {
	defer d.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(d.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-d.signal.C():
		}
		d.fetchAndDispatch(ctx, jobs)
	}
}

func (d *OutboxDispatcher) fetchAndDispatch(ctx context.Context, jobs chan<- model.OutboxEvent) {
	events, err := d.queue.ClaimBatch(ctx, d.opts.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			d.logger.Error("claim outbox batch failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case jobs <- event:
		}
	}
}

func (d *OutboxDispatcher) worker(ctx context.Context, jobs <-chan model.OutboxEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-jobs:
			if !ok {
				return
			}
			d.handleEvent(ctx, event)
		}
	}
}

func (d *OutboxDispatcher) handleEvent(ctx context.Context, event model.OutboxEvent) {
	log := d.logger.With(slog.Int64("event_id", event.ID), slog.String("kind", string(event.Kind)))

	err := d.handler.Handle(ctx, event)
	// Claimed rows are owned by this worker; settle them even while shutting down.
	settleCtx := context.WithoutCancel(ctx)
	if err == nil {
		if err := d.queue.MarkDone(settleCtx, event.ID); err != nil {
			log.Error("mark outbox event done failed", slog.String("error", err.Error()))
		}
		return
	}

	// Attempts already counts this run; ClaimBatch increments it.
	attempts := event.Attempts
	if errors.Is(err, domainErrors.ErrPermanent) || attempts >= d.opts.MaxAttempts {
		log.Error("outbox event failed", slog.Int("attempts", attempts), slog.String("error", err.Error()))
		if err := d.queue.Fail(settleCtx, event.ID, err.Error()); err != nil {
			log.Error("mark outbox event failed", slog.String("error", err.Error()))
		}
		return
	}

	delay := backoff(attempts, err)
	log.Warn("outbox event will be retried",
		slog.Int("attempts", attempts),
		slog.Duration("retry_in", delay),
		slog.String("error", err.Error()))
	if err := d.queue.Retry(settleCtx, event.ID, err.Error(), d.now().Add(delay)); err != nil {
		log.Error("reschedule outbox event failed", slog.String("error", err.Error()))
	}
}

// backoff grows linearly with attempts. A rate limit hint from the remote wins when longer.
func backoff(attempts int, err error) time.Duration {
	delay := time.Duration(attempts) * retryStep
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	var limited httpx.RateLimitError
	if errors.As(err, &limited) && limited.RetryAfter > delay {
		delay = limited.RetryAfter
	}
	return delay
}
