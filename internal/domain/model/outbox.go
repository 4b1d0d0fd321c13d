package model

import "time"

// EventKind names a unit of post-commit work.
type EventKind string

const (
	EventShipmentCreate          EventKind = "shipment.create"
	EventOrderConfirmationEmail  EventKind = "email.order_confirmation"
	EventBookingConfirmationMail EventKind = "email.booking_confirmation"
	EventEnrollmentConfirmation  EventKind = "email.enrollment_confirmation"
	EventOrderStatusEmail        EventKind = "email.order_status"
	EventVerifyEmail             EventKind = "email.verify"
	EventPasswordResetEmail      EventKind = "email.password_reset"
	EventOrderPaid               EventKind = "event.order_paid"
)

// OutboxStatus describes delivery progress of an outbox event.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusDone       OutboxStatus = "DONE"
	OutboxStatusFailed     OutboxStatus = "FAILED"
)

// OutboxPayload references the records an event acts on.
type OutboxPayload struct {
	OrderID      int64  `json:"orderId,omitempty"`
	BookingID    int64  `json:"bookingId,omitempty"`
	EnrollmentID int64  `json:"enrollmentId,omitempty"`
	UserID       int64  `json:"userId,omitempty"`
	Status       string `json:"status,omitempty"`
	Token        string `json:"token,omitempty"`
}

// OutboxMessage is an event to be written alongside a business record.
type OutboxMessage struct {
	Kind    EventKind
	Payload OutboxPayload
}

// OutboxEvent is a persisted outbox row.
type OutboxEvent struct {
	ID          int64
	Kind        EventKind
	Payload     OutboxPayload
	Status      OutboxStatus
	Attempts    int
	LastError   string
	AvailableAt time.Time
	CreatedAt   time.Time
}
