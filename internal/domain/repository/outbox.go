package repository

import (
	"context"
	"time"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// OutboxRepository manages post-commit events.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg model.OutboxMessage) error
	// ClaimBatch marks up to limit due events as processing and returns them.
	ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkDone(ctx context.Context, id int64) error
	Retry(ctx context.Context, id int64, cause string, at time.Time) error
	Fail(ctx context.Context, id int64, cause string) error
}
