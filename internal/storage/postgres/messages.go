package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type messageRepository struct {
	storage *Storage
}

type statsRepository struct {
	storage *Storage
}

const messageColumns = `id, name, email, phone, subject, message, read, created_at`

func scanMessage(row pgx.Row) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Read, &m.CreatedAt)
	return m, err
}

func (r *messageRepository) Create(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	const query = `INSERT INTO contact_messages (name, email, phone, subject, message)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING ` + messageColumns
	m, err := scanMessage(r.storage.pool.QueryRow(ctx, query, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message))
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

func (r *messageRepository) List(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
	const query = `SELECT ` + messageColumns + ` FROM contact_messages
                   WHERE NOT $1 OR NOT read
                   ORDER BY created_at DESC, id DESC
                   LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return collect(rows, scanMessage)
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
	const query = `UPDATE contact_messages SET read=$2 WHERE id=$1 RETURNING ` + messageColumns
	m, err := scanMessage(r.storage.pool.QueryRow(ctx, query, id, read))
	if err != nil {
		return nil, translate(err, domainErrors.ErrMessageNotFound)
	}
	return &m, nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrMessageNotFound, `DELETE FROM contact_messages WHERE id=$1`, id)
}

func (r *statsRepository) Collect(ctx context.Context) (*model.Stats, error) {
	const countsQuery = `SELECT
                            (SELECT COUNT(*) FROM users),
                            (SELECT COUNT(*) FROM orders),
                            (SELECT COUNT(*) FROM service_bookings),
                            (SELECT COUNT(*) FROM course_enrollments),
                            (SELECT COUNT(*) FROM contact_messages WHERE NOT read),
                            (SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status NOT IN ('CANCELLED', 'REFUNDED'))`

	stats := &model.Stats{Revenue: decimal.Zero, OrdersByStatus: make(map[model.OrderStatus]int64)}
	err := r.storage.pool.QueryRow(ctx, countsQuery).Scan(
		&stats.Users, &stats.Orders, &stats.Bookings, &stats.Enrollments, &stats.UnreadMessages, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("collect counters: %w", err)
	}

	rows, err := r.storage.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("collect order statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status model.OrderStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
