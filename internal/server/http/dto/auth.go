package dto

import "time"

// RegisterRequest describes the customer sign-up payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest describes email/password credentials for both session domains.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries a single email address.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a password reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserResponse is the public view of a customer account.
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AdminResponse is the public view of an operator account.
type AdminResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// SessionResponse is returned after a successful login or registration.
type SessionResponse struct {
	Token string         `json:"token"`
	User  *UserResponse  `json:"user,omitempty"`
	Admin *AdminResponse `json:"admin,omitempty"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
