package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

type trackingRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, items, total_amount, currency, status, payment_id, gateway_order_id,
                      shipping_address, tracking_id, courier_name, shipment_id, created_at, updated_at`

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o        model.Order
		items    []byte
		shipping []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &o.TotalAmount, &o.Currency, &o.Status, &o.PaymentID, &o.GatewayOrderID,
		&shipping, &o.TrackingID, &o.CourierName, &o.ShipmentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return o, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return o, fmt.Errorf("decode shipping address: %w", err)
	}
	return o, nil
}

func getOrder(ctx context.Context, q querier, id int64) (*model.Order, error) {
	o, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrOrderNotFound)
	}
	return &o, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	return getOrder(ctx, r.storage.pool, id)
}

func (r *orderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_id=$1`, paymentID))
	if err != nil {
		return nil, translate(err, domainErrors.ErrOrderNotFound)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE ($1 = 0 OR user_id = $1) AND ($2 = '' OR status = $2)
                   ORDER BY created_at DESC, id DESC
                   LIMIT $3 OFFSET $4`
	rows, err := r.storage.pool.Query(ctx, query, filter.UserID, string(filter.Status), filter.Page.Limit, filter.Page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collect(rows, scanOrder)
}

// Delete removes the order; tracking rows go with it via ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrOrderNotFound, `DELETE FROM orders WHERE id=$1`, id)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var previous model.OrderStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, change.OrderID).Scan(&previous); err != nil {
			return translate(err, domainErrors.ErrOrderNotFound)
		}

		const updateQuery = `UPDATE orders
                             SET status=$2,
                                 courier_name=COALESCE($3, courier_name),
                                 tracking_id=COALESCE($4, tracking_id),
                                 updated_at=NOW()
                             WHERE id=$1
                             RETURNING ` + orderColumns
		o, err := scanOrder(tx.QueryRow(ctx, updateQuery, change.OrderID, change.Status, change.CourierName, change.TrackingID))
		if err != nil {
			return translate(err, domainErrors.ErrOrderNotFound)
		}

		entry := model.TrackingEntry{OrderID: change.OrderID, Status: string(change.Status), Description: change.Describe(previous)}
		if _, err := appendTracking(ctx, tx, entry); err != nil {
			return err
		}

		if err := enqueue(ctx, tx, model.OutboxMessage{
			Kind:    model.EventOrderStatusEmail,
			Payload: model.OutboxPayload{OrderID: o.ID, UserID: o.UserID, Status: string(change.Status)},
		}); err != nil {
			return err
		}

		updated = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) RecordShipment(ctx context.Context, orderID int64, shipmentID string) error {
	return execAffected(ctx, r.storage.pool, domainErrors.ErrOrderNotFound,
		`UPDATE orders SET shipment_id=$2, updated_at=NOW() WHERE id=$1`, orderID, shipmentID)
}

func (r *orderRepository) AttachShipment(ctx context.Context, orderID int64, shipment model.Shipment, entry model.TrackingEntry) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders
                             SET tracking_id=$2, courier_name=$3, shipment_id=$4, updated_at=NOW()
                             WHERE id=$1`
		if err := execAffected(ctx, tx, domainErrors.ErrOrderNotFound, updateQuery,
			orderID, shipment.AWBCode, shipment.CourierName, shipment.ShipmentID); err != nil {
			return err
		}
		entry.OrderID = orderID
		_, err := appendTracking(ctx, tx, entry)
		return err
	})
}

const trackingColumns = `id, order_id, status, description, location, created_at, updated_at`

func scanTracking(row pgx.Row) (model.TrackingEntry, error) {
	var e model.TrackingEntry
	err := row.Scan(&e.ID, &e.OrderID, &e.Status, &e.Description, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func appendTracking(ctx context.Context, q querier, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	const query = `INSERT INTO order_tracking (order_id, status, description, location)
                   VALUES ($1, $2, $3, $4)
                   RETURNING ` + trackingColumns
	e, err := scanTracking(q.QueryRow(ctx, query, entry.OrderID, entry.Status, entry.Description, entry.Location))
	if err != nil {
		if pgErrorCode(err) == pgerrcode.ForeignKeyViolation {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("append tracking: %w", err)
	}
	return &e, nil
}

func (r *trackingRepository) Get(ctx context.Context, id int64) (*model.TrackingEntry, error) {
	e, err := scanTracking(r.storage.pool.QueryRow(ctx, `SELECT `+trackingColumns+` FROM order_tracking WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err, domainErrors.ErrTrackingNotFound)
	}
	return &e, nil
}

// List returns entries newest first.
func (r *trackingRepository) List(ctx context.Context, orderID int64) ([]model.TrackingEntry, error) {
	const query = `SELECT ` + trackingColumns + ` FROM order_tracking WHERE order_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list tracking: %w", err)
	}
	return collect(rows, scanTracking)
}

func (r *trackingRepository) Append(ctx context.Context, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	return appendTracking(ctx, r.storage.pool, entry)
}

func (r *trackingRepository) Update(ctx context.Context, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error) {
	const query = `UPDATE order_tracking
                   SET status=COALESCE($2, status),
                       description=COALESCE($3, description),
                       location=COALESCE($4, location),
                       updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + trackingColumns
	e, err := scanTracking(r.storage.pool.QueryRow(ctx, query, id, update.Status, update.Description, update.Location))
	if err != nil {
		return nil, translate(err, domainErrors.ErrTrackingNotFound)
	}
	return &e, nil
}
