package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// CreateOrderRequest opens a gateway order. Amount is in major units (rupees).
type CreateOrderRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Type     string            `json:"type"`
	Notes    map[string]string `json:"notes"`
}

// CreateOrderResponse is what the browser checkout needs to open the gateway widget.
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}

// CheckoutItem is a requested product line. Prices come from the catalog.
type CheckoutItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CheckoutData is the type-specific part of a verification request.
type CheckoutData struct {
	Items           []CheckoutItem        `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	ServiceID       int64                 `json:"serviceId"`
	CourseID        int64                 `json:"courseId"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	PreferredDate   *time.Time            `json:"preferredDate"`
	Notes           string                `json:"notes"`
}

// VerifyPaymentRequest is the signature triple returned by the gateway plus the purchase details.
type VerifyPaymentRequest struct {
	GatewayOrderID string       `json:"razorpay_order_id"`
	PaymentID      string       `json:"razorpay_payment_id"`
	Signature      string       `json:"razorpay_signature"`
	Type           string       `json:"type"`
	Data           CheckoutData `json:"data"`
}

// VerifyPaymentResponse confirms a recorded purchase. OrderID is the local record id.
type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
	OrderID   int64  `json:"orderId"`
	Type      string `json:"type"`
	Duplicate bool   `json:"duplicate,omitempty"`
}
