package usecase

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
)

const minPasswordLength = 8

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare addr-spec, rejecting display names.
func ValidateEmail(email string) error {
	if email == "" {
		return domainErrors.ErrMissingFields
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, ".") {
		return domainErrors.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return domainErrors.ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return domainErrors.ErrInvalidPassword
	}
	return nil
}

func requireText(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return domainErrors.ErrMissingFields
		}
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}
