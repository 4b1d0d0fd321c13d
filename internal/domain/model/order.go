package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

var orderStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusPlaced,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// ParseOrderStatus normalizes s to upper case and checks it against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range orderStatuses {
		if st == candidate {
			return st, true
		}
	}
	return "", false
}

// AdminSettable reports whether an operator may move an order into this status.
// PAID is only ever written by payment verification.
func (s OrderStatus) AdminSettable() bool {
	return s != OrderStatusPaid && s != ""
}

// Closed reports whether a customer may no longer cancel the order.
func (s OrderStatus) Closed() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// CountsAsRevenue reports whether the order contributes to paid revenue.
func (s OrderStatus) CountsAsRevenue() bool {
	return s != OrderStatusCancelled && s != OrderStatusRefunded
}

// OrderItem is a frozen snapshot of a purchased product line.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

// LineTotal is price multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Order is a paid purchase of physical products.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Currency        string
	Status          OrderStatus
	PaymentID       string
	GatewayOrderID  string
	ShippingAddress ShippingAddress
	TrackingID      string
	CourierName     string
	ShipmentID      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SumItems returns the total of all order lines.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderFilter narrows order listings. Zero UserID lists all users.
type OrderFilter struct {
	UserID int64
	Status OrderStatus
	Page   Page
}

// StatusChange requests an order move into Status, optionally recording courier details.
type StatusChange struct {
	OrderID     int64
	Status      OrderStatus
	CourierName *string
	TrackingID  *string
}

// Describe renders the tracking description for a transition from previous.
func (c StatusChange) Describe(previous OrderStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order status changed from %s to %s", previous, c.Status)
	if c.CourierName != nil && *c.CourierName != "" {
		fmt.Fprintf(&b, " via %s", *c.CourierName)
	}
	if c.TrackingID != nil && *c.TrackingID != "" {
		fmt.Fprintf(&b, " (tracking %s)", *c.TrackingID)
	}
	return b.String()
}

// TrackingEntry is one row of an order's fulfilment log. Status is free text.
type TrackingEntry struct {
	ID          int64
	OrderID     int64
	Status      string
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TrackingUpdate carries optional edits to a tracking entry.
type TrackingUpdate struct {
	Status      *string
	Description *string
	Location    *string
}

// Shipment is the provider's response to registering an order.
type Shipment struct {
	ShipmentID  string
	AWBCode     string
	CourierName string
}

// BulkStatusResult reports a multi-order status change. Missing lists ids that did not exist.
type BulkStatusResult struct {
	Updated []Order
	Missing []int64
}

// StatusRequest is an unvalidated status change as submitted by a caller.
type StatusRequest struct {
	Status      string
	CourierName *string
	TrackingID  *string
}
