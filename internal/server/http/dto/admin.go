package dto

import "time"

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactMessageResponse is a stored enquiry.
type ContactMessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarkReadRequest flags an enquiry. Read defaults to true.
type MarkReadRequest struct {
	ID   ID    `json:"id"`
	Read *bool `json:"read"`
}

// RoleRequest changes a customer's role.
type RoleRequest struct {
	ID   ID     `json:"id"`
	Role string `json:"role"`
}

// StatsResponse feeds the back office dashboard.
type StatsResponse struct {
	Users          int64            `json:"users"`
	Orders         int64            `json:"orders"`
	Bookings       int64            `json:"bookings"`
	Enrollments    int64            `json:"enrollments"`
	UnreadMessages int64            `json:"unreadMessages"`
	Revenue        float64          `json:"revenue"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}
