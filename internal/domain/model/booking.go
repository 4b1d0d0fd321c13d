package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is shared by service bookings and course enrollments.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus normalizes s and checks it against the known statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case BookingStatusPending, BookingStatusPaid, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// Contact holds the purchaser details supplied at checkout.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// ServiceBooking is a paid reservation of a service. UserID is nil for guests.
type ServiceBooking struct {
	ID             int64
	UserID         *int64
	ServiceID      int64
	ServiceName    string
	Contact        Contact
	ScheduledAt    *time.Time
	Notes          string
	Amount         decimal.Decimal
	PaymentID      string
	GatewayOrderID string
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CourseEnrollment is a paid seat in a course. UserID is nil for guests.
type CourseEnrollment struct {
	ID             int64
	UserID         *int64
	CourseID       int64
	CourseTitle    string
	Contact        Contact
	Amount         decimal.Decimal
	PaymentID      string
	GatewayOrderID string
	Status         BookingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BookingFilter narrows booking and enrollment listings. Nil UserID lists everyone.
type BookingFilter struct {
	UserID *int64
	Status BookingStatus
	Page   Page
}

// Reschedule edits a booking's preferred date and notes.
type Reschedule struct {
	ScheduledAt *time.Time
	Notes       *string
}
