package dto

import "time"

// BookingResponse is the view of a service booking.
type BookingResponse struct {
	ID            int64      `json:"id"`
	UserID        *int64     `json:"userId,omitempty"`
	ServiceID     int64      `json:"serviceId"`
	ServiceName   string     `json:"serviceName"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	PreferredDate *time.Time `json:"preferredDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Amount        float64    `json:"amount"`
	PaymentID     string     `json:"paymentId"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// EnrollmentResponse is the view of a course enrollment.
type EnrollmentResponse struct {
	ID          int64     `json:"id"`
	UserID      *int64    `json:"userId,omitempty"`
	CourseID    int64     `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Amount      float64   `json:"amount"`
	PaymentID   string    `json:"paymentId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RescheduleRequest edits a customer's own booking.
type RescheduleRequest struct {
	ID            ID         `json:"id"`
	PreferredDate *time.Time `json:"preferredDate"`
	Notes         *string    `json:"notes"`
}

// StatusRequest sets the status of a booking, enrollment or message.
type StatusRequest struct {
	ID     ID     `json:"id"`
	Status string `json:"status"`
}
