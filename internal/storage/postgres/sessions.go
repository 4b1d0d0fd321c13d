package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// sessionRepository serves both session tables; table and subject are fixed identifiers.
type sessionRepository struct {
	storage *Storage
	table   string
	subject string
}

func (r *sessionRepository) Create(ctx context.Context, session model.Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (token, %s, expires_at) VALUES ($1, $2, $3)`, r.table, r.subject)
	if _, err := r.storage.pool.Exec(ctx, query, session.Token, session.SubjectID, session.ExpiresAt); err != nil {
		return fmt.Errorf("create session: %w", translate(err, domainErrors.ErrNotFound))
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	query := fmt.Sprintf(`SELECT token, %s, expires_at, created_at FROM %s WHERE token=$1`, r.subject, r.table)
	var s model.Session
	err := r.storage.pool.QueryRow(ctx, query, token).Scan(&s.Token, &s.SubjectID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, translate(err, domainErrors.ErrNotFound)
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE token=$1`, r.table)
	if _, err := r.storage.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteBySubject(ctx context.Context, subjectID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s=$1`, r.table, r.subject)
	if _, err := r.storage.pool.Exec(ctx, query, subjectID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}
