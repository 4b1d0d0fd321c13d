package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// SessionRepository stores opaque session tokens of one trust domain.
type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteBySubject(ctx context.Context, subjectID int64) error
}

// CustomerSessionRepository stores storefront sessions.
type CustomerSessionRepository interface {
	SessionRepository
}

// AdminSessionRepository stores back-office sessions.
type AdminSessionRepository interface {
	SessionRepository
}
