package repository

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Get(ctx context.Context, id int64) (*model.Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Delete(ctx context.Context, id int64) error
	// UpdateStatus applies the change, appends a tracking row and enqueues a status email in one transaction.
	UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error)
	RecordShipment(ctx context.Context, orderID int64, shipmentID string) error
	// AttachShipment stores courier details and appends the initial tracking row in one transaction.
	AttachShipment(ctx context.Context, orderID int64, shipment model.Shipment, entry model.TrackingEntry) error
}

// TrackingRepository describes persistence operations for order tracking rows.
type TrackingRepository interface {
	Get(ctx context.Context, id int64) (*model.TrackingEntry, error)
	List(ctx context.Context, orderID int64) ([]model.TrackingEntry, error)
	Append(ctx context.Context, entry model.TrackingEntry) (*model.TrackingEntry, error)
	Update(ctx context.Context, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error)
}
