package test

import (
	"context"
	"sync"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// EventHandlerStub records handled outbox events.
type EventHandlerStub struct {
	HandleFn func(context.Context, model.OutboxEvent) error

	mu      sync.Mutex
	Handled []model.OutboxEvent
}

// Handle records event and delegates to HandleFn.
func (s *EventHandlerStub) Handle(ctx context.Context, event model.OutboxEvent) error {
	s.mu.Lock()
	s.Handled = append(s.Handled, event)
	s.mu.Unlock()
	if s.HandleFn != nil {
		return s.HandleFn(ctx, event)
	}
	return nil
}

// Count returns the number of handled events.
func (s *EventHandlerStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Handled)
}

// ClaimOnce returns a ClaimBatch func that yields each batch a single time.
func ClaimOnce(batches ...[]model.OutboxEvent) func(context.Context, int) ([]model.OutboxEvent, error) {
	var mu sync.Mutex
	return func(context.Context, int) ([]model.OutboxEvent, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(batches) == 0 {
			return nil, nil
		}
		next := batches[0]
		batches = batches[1:]
		return next, nil
	}
}
