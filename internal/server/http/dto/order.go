package dto

import (
	"time"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// OrderItemResponse is a frozen line of an order.
type OrderItemResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"userId"`
	Items           []OrderItemResponse   `json:"items"`
	TotalAmount     float64               `json:"totalAmount"`
	Currency        string                `json:"currency"`
	Status          string                `json:"status"`
	PaymentID       string                `json:"paymentId"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	TrackingID      string                `json:"trackingId,omitempty"`
	CourierName     string                `json:"courierName,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// OrderStatusRequest changes the status of one order (orderId) or many (orderIds).
type OrderStatusRequest struct {
	ID          ID      `json:"id"`
	OrderID     ID      `json:"orderId"`
	OrderIDs    []int64 `json:"orderIds"`
	Status      string  `json:"status"`
	CourierName *string `json:"courierName"`
	TrackingID  *string `json:"trackingId"`
}

// BulkStatusResponse reports a multi-order status change.
type BulkStatusResponse struct {
	Success bool            `json:"success"`
	Updated []OrderResponse `json:"updated"`
	Missing []int64         `json:"missing"`
}

// TrackingRequest appends (orderId) or edits (id) a tracking entry.
type TrackingRequest struct {
	ID          ID      `json:"id"`
	OrderID     ID      `json:"orderId"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

// TrackingResponse is one row of the fulfilment log.
type TrackingResponse struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"orderId"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
