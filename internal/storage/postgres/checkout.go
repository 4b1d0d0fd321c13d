package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type checkoutRepository struct {
	storage *Storage
}

// PlaceOrder inserts the paid order, decrements stock, empties the buyer's cart and enqueues
// post-commit events. A payment id already on record yields the stored order untouched.
func (r *checkoutRepository) PlaceOrder(ctx context.Context, order model.Order, events []model.EventKind) (*model.Order, bool, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, false, fmt.Errorf("encode order items: %w", err)
	}
	shipping, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, false, fmt.Errorf("encode shipping address: %w", err)
	}

	var (
		placed  *model.Order
		created bool
	)
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO orders (user_id, items, total_amount, currency, status, payment_id, gateway_order_id, shipping_address)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                             ON CONFLICT (payment_id) DO NOTHING
                             RETURNING ` + orderColumns
		o, err := scanOrder(tx.QueryRow(ctx, insertQuery, order.UserID, items, order.TotalAmount, order.Currency,
			model.OrderStatusPaid, order.PaymentID, order.GatewayOrderID, shipping))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				existing, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_id=$1`, order.PaymentID))
				if err != nil {
					return translate(err, domainErrors.ErrOrderNotFound)
				}
				placed = &existing
				return nil
			}
			return translate(err, domainErrors.ErrOrderNotFound)
		}

		for _, item := range order.Items {
			const stockQuery = `UPDATE products SET stock=stock-$2, updated_at=NOW() WHERE id=$1 AND stock >= $2`
			if err := execAffected(ctx, tx, domainErrors.ErrInsufficientStock, stockQuery, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, order.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if err := enqueueAll(ctx, tx, events, model.OutboxPayload{OrderID: o.ID, UserID: o.UserID}); err != nil {
			return err
		}

		placed = &o
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return placed, created, nil
}

func (r *checkoutRepository) RecordBooking(ctx context.Context, booking model.ServiceBooking, events []model.EventKind) (*model.ServiceBooking, bool, error) {
	var (
		recorded *model.ServiceBooking
		created  bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO service_bookings (user_id, service_id, customer_name, email, phone, scheduled_at, notes, amount, payment_id, gateway_order_id, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                             ON CONFLICT (payment_id) DO NOTHING
                             RETURNING id`
		var id int64
		err := tx.QueryRow(ctx, insertQuery, booking.UserID, booking.ServiceID, booking.Contact.Name, booking.Contact.Email,
			booking.Contact.Phone, booking.ScheduledAt, booking.Notes, booking.Amount, booking.PaymentID, booking.GatewayOrderID,
			model.BookingStatusPaid).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			existing, err := getBooking(ctx, tx, bookingSelect+` WHERE b.payment_id=$1`, booking.PaymentID)
			if err != nil {
				return err
			}
			recorded = existing
			return nil
		case err != nil:
			return translate(err, domainErrors.ErrServiceNotFound)
		}

		if err := enqueueAll(ctx, tx, events, model.OutboxPayload{BookingID: id}); err != nil {
			return err
		}

		recorded, err = getBooking(ctx, tx, bookingSelect+` WHERE b.id=$1`, id)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return recorded, created, nil
}

func (r *checkoutRepository) RecordEnrollment(ctx context.Context, enrollment model.CourseEnrollment, events []model.EventKind) (*model.CourseEnrollment, bool, error) {
	var (
		recorded *model.CourseEnrollment
		created  bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO course_enrollments (user_id, course_id, customer_name, email, phone, amount, payment_id, gateway_order_id, status)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                             ON CONFLICT (payment_id) DO NOTHING
                             RETURNING id`
		var id int64
		err := tx.QueryRow(ctx, insertQuery, enrollment.UserID, enrollment.CourseID, enrollment.Contact.Name, enrollment.Contact.Email,
			enrollment.Contact.Phone, enrollment.Amount, enrollment.PaymentID, enrollment.GatewayOrderID, model.BookingStatusPaid).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			existing, err := getEnrollment(ctx, tx, enrollmentSelect+` WHERE e.payment_id=$1`, enrollment.PaymentID)
			if err != nil {
				return err
			}
			recorded = existing
			return nil
		case err != nil:
			return translate(err, domainErrors.ErrCourseNotFound)
		}

		if err := enqueueAll(ctx, tx, events, model.OutboxPayload{EnrollmentID: id}); err != nil {
			return err
		}

		recorded, err = getEnrollment(ctx, tx, enrollmentSelect+` WHERE e.id=$1`, id)
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return recorded, created, nil
}
