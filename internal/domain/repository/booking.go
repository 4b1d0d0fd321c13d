package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// BookingRepository describes persistence operations for service bookings.
type BookingRepository interface {
	Get(ctx context.Context, id int64) (*model.ServiceBooking, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*model.ServiceBooking, error)
	List(ctx context.Context, filter model.BookingFilter) ([]model.ServiceBooking, error)
	Reschedule(ctx context.Context, id int64, change model.Reschedule) (*model.ServiceBooking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.ServiceBooking, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentRepository describes persistence operations for course enrollments.
type EnrollmentRepository interface {
	Get(ctx context.Context, id int64) (*model.CourseEnrollment, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*model.CourseEnrollment, error)
	List(ctx context.Context, filter model.BookingFilter) ([]model.CourseEnrollment, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.CourseEnrollment, error)
}
