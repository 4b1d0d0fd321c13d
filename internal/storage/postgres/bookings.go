package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type bookingRepository struct {
	storage *Storage
}

type enrollmentRepository struct {
	storage *Storage
}

const bookingSelect = `SELECT b.id, b.user_id, b.service_id, s.name, b.customer_name, b.email, b.phone, b.scheduled_at, b.notes,
                              b.amount, b.payment_id, b.gateway_order_id, b.status, b.created_at, b.updated_at
                       FROM service_bookings b JOIN services s ON s.id = b.service_id`

func scanBooking(row pgx.Row) (model.ServiceBooking, error) {
	var b model.ServiceBooking
	err := row.Scan(&b.ID, &b.UserID, &b.ServiceID, &b.ServiceName, &b.Contact.Name, &b.Contact.Email, &b.Contact.Phone,
		&b.ScheduledAt, &b.Notes, &b.Amount, &b.PaymentID, &b.GatewayOrderID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func getBooking(ctx context.Context, q querier, query string, arg any) (*model.ServiceBooking, error) {
	b, err := scanBooking(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translate(err, domainErrors.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*model.ServiceBooking, error) {
	return getBooking(ctx, r.storage.pool, bookingSelect+` WHERE b.id=$1`, id)
}

func (r *bookingRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.ServiceBooking, error) {
	return getBooking(ctx, r.storage.pool, bookingSelect+` WHERE b.payment_id=$1`, paymentID)
}

func (r *bookingRepository) List(ctx context.Context, filter model.BookingFilter) ([]model.ServiceBooking, error) {
	const where = ` WHERE ($1::BIGINT IS NULL OR b.user_id = $1) AND ($2 = '' OR b.status = $2)
                    ORDER BY b.created_at DESC, b.id DESC
                    LIMIT $3 OFFSET $4`
	rows, err := r.storage.pool.Query(ctx, bookingSelect+where, filter.UserID, string(filter.Status), filter.Page.Limit, filter.Page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collect(rows, scanBooking)
}

func (r *bookingRepository) Reschedule(ctx context.Context, id int64, change model.Reschedule) (*model.ServiceBooking, error) {
	const query = `UPDATE service_bookings
                   SET scheduled_at=COALESCE($2, scheduled_at), notes=COALESCE($3, notes), updated_at=NOW()
                   WHERE id=$1`
	if err := execAffected(ctx, r.storage.pool, domainErrors.ErrBookingNotFound, query, id, change.ScheduledAt, change.Notes); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.ServiceBooking, error) {
	if err := execAffected(ctx, r.storage.pool, domainErrors.ErrBookingNotFound,
		`UPDATE service_bookings SET status=$2, updated_at=NOW() WHERE id=$1`, id, status); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrBookingNotFound, `DELETE FROM service_bookings WHERE id=$1`, id)
}

const enrollmentSelect = `SELECT e.id, e.user_id, e.course_id, c.title, e.customer_name, e.email, e.phone,
                                 e.amount, e.payment_id, e.gateway_order_id, e.status, e.created_at, e.updated_at
                          FROM course_enrollments e JOIN courses c ON c.id = e.course_id`

func scanEnrollment(row pgx.Row) (model.CourseEnrollment, error) {
	var e model.CourseEnrollment
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CourseTitle, &e.Contact.Name, &e.Contact.Email, &e.Contact.Phone,
		&e.Amount, &e.PaymentID, &e.GatewayOrderID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func getEnrollment(ctx context.Context, q querier, query string, arg any) (*model.CourseEnrollment, error) {
	e, err := scanEnrollment(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translate(err, domainErrors.ErrEnrollmentNotFound)
	}
	return &e, nil
}

func (r *enrollmentRepository) Get(ctx context.Context, id int64) (*model.CourseEnrollment, error) {
	return getEnrollment(ctx, r.storage.pool, enrollmentSelect+` WHERE e.id=$1`, id)
}

func (r *enrollmentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.CourseEnrollment, error) {
	return getEnrollment(ctx, r.storage.pool, enrollmentSelect+` WHERE e.payment_id=$1`, paymentID)
}

func (r *enrollmentRepository) List(ctx context.Context, filter model.BookingFilter) ([]model.CourseEnrollment, error) {
	const where = ` WHERE ($1::BIGINT IS NULL OR e.user_id = $1) AND ($2 = '' OR e.status = $2)
                    ORDER BY e.created_at DESC, e.id DESC
                    LIMIT $3 OFFSET $4`
	rows, err := r.storage.pool.Query(ctx, enrollmentSelect+where, filter.UserID, string(filter.Status), filter.Page.Limit, filter.Page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return collect(rows, scanEnrollment)
}

func (r *enrollmentRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.CourseEnrollment, error) {
	if err := execAffected(ctx, r.storage.pool, domainErrors.ErrEnrollmentNotFound,
		`UPDATE course_enrollments SET status=$2, updated_at=NOW() WHERE id=$1`, id, status); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}
