package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// staleProcessingAfter is how long a claimed event may stay PROCESSING before it is claimed again.
const staleProcessingAfter = 5 * time.Minute

type outboxRepository struct {
	storage *Storage
}

func enqueue(ctx context.Context, q querier, msg model.OutboxMessage) error {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("encode outbox payload: %w", err)
	}
	if _, err := q.Exec(ctx, `INSERT INTO outbox_events (kind, payload) VALUES ($1, $2)`, msg.Kind, payload); err != nil {
		return fmt.Errorf("enqueue %s: %w", msg.Kind, err)
	}
	return nil
}

func enqueueAll(ctx context.Context, q querier, kinds []model.EventKind, payload model.OutboxPayload) error {
	for _, kind := range kinds {
		if err := enqueue(ctx, q, model.OutboxMessage{Kind: kind, Payload: payload}); err != nil {
			return err
		}
	}
	return nil
}

func (r *outboxRepository) Enqueue(ctx context.Context, msg model.OutboxMessage) error {
	return enqueue(ctx, r.storage.pool, msg)
}

func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	const selectQuery = `SELECT id, kind, payload, status, attempts, last_error, available_at, created_at
                         FROM outbox_events
                         WHERE (status = 'PENDING' AND available_at <= NOW())
                            OR (status = 'PROCESSING' AND updated_at < $2)
                         ORDER BY available_at, id
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var events []model.OutboxEvent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit, time.Now().Add(-staleProcessingAfter))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e       model.OutboxEvent
				payload []byte
			)
			if err := rows.Scan(&e.ID, &e.Kind, &payload, &e.Status, &e.Attempts, &e.LastError, &e.AvailableAt, &e.CreatedAt); err != nil {
				return err
			}
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				return fmt.Errorf("decode outbox payload %d: %w", e.ID, err)
			}
			events = append(events, e)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range events {
			if _, err := tx.Exec(ctx, `UPDATE outbox_events SET status='PROCESSING', attempts=attempts+1, updated_at=NOW() WHERE id=$1`, events[i].ID); err != nil {
				return err
			}
			events[i].Status = model.OutboxStatusProcessing
			events[i].Attempts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkDone(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrNotFound,
		`UPDATE outbox_events SET status='DONE', last_error='', updated_at=NOW() WHERE id=$1`, id)
}

func (r *outboxRepository) Retry(ctx context.Context, id int64, cause string, at time.Time) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrNotFound,
		`UPDATE outbox_events SET status='PENDING', last_error=$2, available_at=$3, updated_at=NOW() WHERE id=$1`, id, cause, at)
}

func (r *outboxRepository) Fail(ctx context.Context, id int64, cause string) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrNotFound,
		`UPDATE outbox_events SET status='FAILED', last_error=$2, updated_at=NOW() WHERE id=$1`, id, cause)
}
