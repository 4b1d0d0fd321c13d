package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// MessageRepository describes persistence operations for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error)
	MarkRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}

// StatsRepository aggregates dashboard counters.
type StatsRepository interface {
	Collect(ctx context.Context) (*model.Stats, error)
}
