package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// CheckoutRepository records the business outcome of a verified payment.
// Each method writes the record and its outbox events in one transaction and is keyed on the payment id:
// a repeated payment returns the existing record with created set to false.
type CheckoutRepository interface {
	PlaceOrder(ctx context.Context, order model.Order, events []model.EventKind) (*model.Order, bool, error)
	RecordBooking(ctx context.Context, booking model.ServiceBooking, events []model.EventKind) (*model.ServiceBooking, bool, error)
	RecordEnrollment(ctx context.Context, enrollment model.CourseEnrollment, events []model.EventKind) (*model.CourseEnrollment, bool, error)
}
