package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrReferenced         = errors.New("resource is referenced by other records")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
	ErrInvalidType     = errors.New("invalid payment type")
	ErrInvalidRole     = errors.New("invalid role")

	ErrInsufficientStock = errors.New("insufficient stock")

	ErrProductNotFound    = errors.New("product not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrTrackingNotFound   = errors.New("tracking entry not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMessageNotFound    = errors.New("message not found")

	ErrInvalidSignature      = errors.New("invalid payment signature")
	ErrPaymentNotConfigured  = errors.New("payment gateway is not configured")
	ErrPaymentGateway        = errors.New("payment gateway error")
	ErrShippingNotConfigured = errors.New("shipping provider is not configured")
	ErrShippingProvider      = errors.New("shipping provider error")
	ErrOAuthNotConfigured    = errors.New("oauth provider is not configured")

	// ErrPermanent marks an outbox event that must not be retried.
	ErrPermanent = errors.New("permanent failure")
)
