package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// OrderUseCase serves order history, status changes and the tracking log.
type OrderUseCase struct {
	orders   repository.OrderRepository
	tracking repository.TrackingRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, tracking repository.TrackingRepository, notifier Notifier, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, tracking: tracking, notifier: notifier, logger: logger}
}

// List returns orders visible to p. Customers only ever see their own.
func (u *OrderUseCase) List(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if !model.IsAdmin(p) {
		filter.UserID = p.SubjectID()
	}
	filter.Page = model.NewPage(filter.Page.Limit, filter.Page.Offset)
	return u.orders.List(ctx, filter)
}

// Get returns one order if p may see it.
func (u *OrderUseCase) Get(ctx context.Context, p model.Principal, id int64) (*model.Order, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanAccess(p, order.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// UpdateStatus moves one order to a new status. Customers may only cancel an open order of their own.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error) {
	order, err := u.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	change, err := u.statusChange(p, order, req)
	if err != nil {
		return nil, err
	}
	updated, err := u.orders.UpdateStatus(ctx, change)
	if err != nil {
		return nil, err
	}
	u.logStatus(p, updated)
	u.wake()
	return updated, nil
}

// BulkUpdateStatus applies one status to many orders. Unknown ids are reported, not fatal.
func (u *OrderUseCase) BulkUpdateStatus(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error) {
	if !model.IsAdmin(p) {
		return nil, domainErrors.ErrForbidden
	}
	if len(ids) == 0 {
		return nil, domainErrors.ErrMissingFields
	}
	status, err := parseAdminStatus(req.Status)
	if err != nil {
		return nil, err
	}

	result := &model.BulkStatusResult{}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if id <= 0 {
			result.Missing = append(result.Missing, id)
			continue
		}

		updated, err := u.orders.UpdateStatus(ctx, model.StatusChange{
			OrderID:     id,
			Status:      status,
			CourierName: req.CourierName,
			TrackingID:  req.TrackingID,
		})
		if errors.Is(err, domainErrors.ErrOrderNotFound) {
			result.Missing = append(result.Missing, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		u.logStatus(p, updated)
		result.Updated = append(result.Updated, *updated)
	}
	if len(result.Updated) > 0 {
		u.wake()
	}
	return result, nil
}

// Delete removes an order and its tracking log.
func (u *OrderUseCase) Delete(ctx context.Context, p model.Principal, id int64) error {
	if _, err := u.Get(ctx, p, id); err != nil {
		return err
	}
	return u.orders.Delete(ctx, id)
}

// Tracking lists the fulfilment log of an order, newest first.
func (u *OrderUseCase) Tracking(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error) {
	if _, err := u.Get(ctx, p, orderID); err != nil {
		return nil, err
	}
	return u.tracking.List(ctx, orderID)
}

// AppendTracking adds a free-form entry to an order's log without touching its status.
func (u *OrderUseCase) AppendTracking(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	if !model.IsAdmin(p) {
		return nil, domainErrors.ErrForbidden
	}
	if entry.OrderID <= 0 {
		return nil, domainErrors.ErrMissingFields
	}
	entry.Status = strings.TrimSpace(entry.Status)
	entry.Description = strings.TrimSpace(entry.Description)
	entry.Location = strings.TrimSpace(entry.Location)
	if err := requireText(entry.Status, entry.Description); err != nil {
		return nil, err
	}
	return u.tracking.Append(ctx, entry)
}

// EditTracking changes the set fields of a tracking entry.
func (u *OrderUseCase) EditTracking(ctx context.Context, p model.Principal, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error) {
	if !model.IsAdmin(p) {
		return nil, domainErrors.ErrForbidden
	}
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	if update.Status == nil && update.Description == nil && update.Location == nil {
		return nil, domainErrors.ErrMissingFields
	}
	for _, field := range []*string{update.Status, update.Description} {
		if field != nil && strings.TrimSpace(*field) == "" {
			return nil, domainErrors.ErrMissingFields
		}
	}
	return u.tracking.Update(ctx, id, update)
}

func (u *OrderUseCase) statusChange(p model.Principal, order *model.Order, req model.StatusRequest) (model.StatusChange, error) {
	if model.IsAdmin(p) {
		status, err := parseAdminStatus(req.Status)
		if err != nil {
			return model.StatusChange{}, err
		}
		return model.StatusChange{OrderID: order.ID, Status: status, CourierName: req.CourierName, TrackingID: req.TrackingID}, nil
	}

	if strings.TrimSpace(req.Status) == "" {
		return model.StatusChange{}, domainErrors.ErrMissingFields
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		return model.StatusChange{}, domainErrors.ErrInvalidStatus
	}
	if status != model.OrderStatusCancelled {
		return model.StatusChange{}, domainErrors.ErrForbidden
	}
	if order.Status.Closed() {
		return model.StatusChange{}, domainErrors.ErrInvalidStatus
	}
	return model.StatusChange{OrderID: order.ID, Status: status}, nil
}

func parseAdminStatus(raw string) (model.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", domainErrors.ErrMissingFields
	}
	status, ok := model.ParseOrderStatus(raw)
	if !ok || !status.AdminSettable() {
		return "", domainErrors.ErrInvalidStatus
	}
	return status, nil
}

func (u *OrderUseCase) logStatus(p model.Principal, order *model.Order) {
	u.logger.Info("order status changed",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)),
		slog.String("by", string(p.Domain())),
		slog.Int64("subject_id", p.SubjectID()))
}

func (u *OrderUseCase) wake() {
	if u.notifier != nil {
		u.notifier.Notify()
	}
}
