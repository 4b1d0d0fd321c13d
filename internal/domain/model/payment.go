package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType selects the business record produced by a verified payment.
type PaymentType string

const (
	PaymentTypeOrder   PaymentType = "order"
	PaymentTypeService PaymentType = "service"
	PaymentTypeCourse  PaymentType = "course"
)

// ParsePaymentType validates a payment type name.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch t := PaymentType(s); t {
	case PaymentTypeOrder, PaymentTypeService, PaymentTypeCourse:
		return t, true
	default:
		return "", false
	}
}

// GatewayOrder is an order created at the payment gateway. Amount is in minor units.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// PaymentProof is the client-asserted triple returned by the gateway checkout.
type PaymentProof struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// Complete reports whether all identifiers are present.
func (p PaymentProof) Complete() bool {
	return p.GatewayOrderID != "" && p.PaymentID != "" && p.Signature != ""
}

// Stats summarises the back office dashboard.
type Stats struct {
	Users          int64
	Orders         int64
	Bookings       int64
	Enrollments    int64
	UnreadMessages int64
	Revenue        decimal.Decimal
	OrdersByStatus map[OrderStatus]int64
}

// PaymentIntent asks the gateway to open an order for Amount in major units.
type PaymentIntent struct {
	Amount   decimal.Decimal
	Currency string
	Type     string
	Notes    map[string]string
}

// PaymentVerification is a verify-payment request. Items carry product ids and quantities only;
// prices are resolved from the catalog.
type PaymentVerification struct {
	Proof       PaymentProof
	Type        string
	Items       []OrderItem
	Address     ShippingAddress
	ItemID      int64
	Contact     Contact
	ScheduledAt *time.Time
	Notes       string
}

// PaymentResult is the outcome of a verified payment.
type PaymentResult struct {
	PaymentID string
	RecordID  int64
	Type      PaymentType
	Created   bool
}
