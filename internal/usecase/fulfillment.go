package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/polkiloo/mysticmart/internal/adapter/broker"
	"github.com/polkiloo/mysticmart/internal/adapter/mailer"
	"github.com/polkiloo/mysticmart/internal/adapter/shiprocket"
	"github.com/polkiloo/mysticmart/internal/config"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

const (
	initialTrackingStatus   = "Processing"
	initialTrackingLocation = "Warehouse"
)

// OrderPaidEvent is published to the broker once an order is paid.
type OrderPaidEvent struct {
	OrderID   int64  `json:"orderId"`
	UserID    int64  `json:"userId"`
	Total     string `json:"total"`
	Currency  string `json:"currency"`
	PaymentID string `json:"paymentId"`
}

// FulfillmentUseCase performs the post-commit side effects recorded in the outbox.
type FulfillmentUseCase struct {
	orders      repository.OrderRepository
	bookings    repository.BookingRepository
	enrollments repository.EnrollmentRepository
	users       repository.UserRepository
	shipping    shiprocket.Provider
	mail        mailer.Sender
	publisher   broker.Publisher
	baseURL     string
	logger      *slog.Logger
}

// NewFulfillmentUseCase constructs FulfillmentUseCase.
func NewFulfillmentUseCase(
	orders repository.OrderRepository,
	bookings repository.BookingRepository,
	enrollments repository.EnrollmentRepository,
	users repository.UserRepository,
	shipping shiprocket.Provider,
	mail mailer.Sender,
	publisher broker.Publisher,
	cfg *config.Config,
	logger *slog.Logger,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		orders:      orders,
		bookings:    bookings,
		enrollments: enrollments,
		users:       users,
		shipping:    shipping,
		mail:        mail,
		publisher:   publisher,
		baseURL:     cfg.BaseURL,
		logger:      logger,
	}
}

// Handle runs one outbox event. Errors wrapping ErrPermanent must not be retried.
func (u *FulfillmentUseCase) Handle(ctx context.Context, event model.OutboxEvent) error {
	var err error
	switch event.Kind {
	case model.EventShipmentCreate:
		err = u.createShipment(ctx, event.Payload.OrderID)
	case model.EventOrderConfirmationEmail:
		err = u.orderEmail(ctx, event.Payload.OrderID, func(to string, o *model.Order) (mailer.Message, error) {
			return mailer.OrderConfirmation(to, o)
		})
	case model.EventOrderStatusEmail:
		err = u.orderEmail(ctx, event.Payload.OrderID, func(to string, o *model.Order) (mailer.Message, error) {
			return mailer.OrderStatus(to, o, u.link("/orders", "id", strconv.FormatInt(o.ID, 10)))
		})
	case model.EventBookingConfirmationMail:
		err = u.bookingEmail(ctx, event.Payload.BookingID)
	case model.EventEnrollmentConfirmation:
		err = u.enrollmentEmail(ctx, event.Payload.EnrollmentID)
	case model.EventVerifyEmail:
		err = u.accountEmail(ctx, event.Payload, func(usr *model.User) (mailer.Message, error) {
			return mailer.VerifyEmail(usr, u.link("/api/auth/verify-email", "token", event.Payload.Token))
		})
	case model.EventPasswordResetEmail:
		err = u.accountEmail(ctx, event.Payload, func(usr *model.User) (mailer.Message, error) {
			return mailer.PasswordReset(usr, u.link("/reset-password", "token", event.Payload.Token))
		})
	case model.EventOrderPaid:
		err = u.publishOrderPaid(ctx, event.Payload.OrderID)
	default:
		err = fmt.Errorf("unknown event kind %q: %w", event.Kind, domainErrors.ErrPermanent)
	}
	return err
}

// createShipment registers the order with the courier. A shipment id recorded by an earlier
// attempt is reused so a retry only repeats the AWB assignment.
func (u *FulfillmentUseCase) createShipment(ctx context.Context, orderID int64) error {
	order, err := u.order(ctx, orderID)
	if err != nil {
		return err
	}
	if order.TrackingID != "" {
		return nil
	}

	shipmentID := order.ShipmentID
	if shipmentID == "" {
		shipmentID, err = u.shipping.CreateShipment(ctx, order)
		if errors.Is(err, domainErrors.ErrShippingNotConfigured) {
			u.logger.Warn("shipping not configured, skipping shipment", slog.Int64("order_id", orderID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("create shipment for order %d: %w", orderID, err)
		}
		if err := u.orders.RecordShipment(ctx, orderID, shipmentID); err != nil {
			return err
		}
	}

	shipment, err := u.shipping.AssignAWB(ctx, shipmentID)
	if errors.Is(err, domainErrors.ErrShippingNotConfigured) {
		u.logger.Warn("shipping not configured, skipping awb", slog.Int64("order_id", orderID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("assign awb for order %d: %w", orderID, err)
	}

	entry := model.TrackingEntry{
		Status:      initialTrackingStatus,
		Description: fmt.Sprintf("Shipment created with %s, AWB %s", shipment.CourierName, shipment.AWBCode),
		Location:    initialTrackingLocation,
	}
	if err := u.orders.AttachShipment(ctx, orderID, *shipment, entry); err != nil {
		return err
	}
	u.logger.Info("shipment created",
		slog.Int64("order_id", orderID),
		slog.String("awb", shipment.AWBCode),
		slog.String("courier", shipment.CourierName))
	return nil
}

func (u *FulfillmentUseCase) orderEmail(ctx context.Context, orderID int64, build func(string, *model.Order) (mailer.Message, error)) error {
	order, err := u.order(ctx, orderID)
	if err != nil {
		return err
	}
	to := order.ShippingAddress.Email
	if to == "" {
		usr, err := u.user(ctx, order.UserID)
		if err != nil {
			return err
		}
		to = usr.Email
	}
	msg, err := build(to, order)
	if err != nil {
		return permanent(err)
	}
	return u.mail.Send(ctx, msg)
}

func (u *FulfillmentUseCase) bookingEmail(ctx context.Context, id int64) error {
	booking, err := u.bookings.Get(ctx, id)
	if err != nil {
		return notFoundIsPermanent(err)
	}
	msg, err := mailer.BookingConfirmation(booking)
	if err != nil {
		return permanent(err)
	}
	return u.mail.Send(ctx, msg)
}

func (u *FulfillmentUseCase) enrollmentEmail(ctx context.Context, id int64) error {
	enrollment, err := u.enrollments.Get(ctx, id)
	if err != nil {
		return notFoundIsPermanent(err)
	}
	msg, err := mailer.EnrollmentConfirmation(enrollment)
	if err != nil {
		return permanent(err)
	}
	return u.mail.Send(ctx, msg)
}

func (u *FulfillmentUseCase) accountEmail(ctx context.Context, payload model.OutboxPayload, build func(*model.User) (mailer.Message, error)) error {
	if payload.Token == "" {
		return fmt.Errorf("account email without token: %w", domainErrors.ErrPermanent)
	}
	usr, err := u.user(ctx, payload.UserID)
	if err != nil {
		return err
	}
	msg, err := build(usr)
	if err != nil {
		return permanent(err)
	}
	return u.mail.Send(ctx, msg)
}

func (u *FulfillmentUseCase) publishOrderPaid(ctx context.Context, orderID int64) error {
	order, err := u.order(ctx, orderID)
	if err != nil {
		return err
	}
	return u.publisher.Publish(ctx, string(model.EventOrderPaid), OrderPaidEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.TotalAmount.StringFixed(2),
		Currency:  order.Currency,
		PaymentID: order.PaymentID,
	})
}

func (u *FulfillmentUseCase) order(ctx context.Context, id int64) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, notFoundIsPermanent(err)
	}
	return order, nil
}

func (u *FulfillmentUseCase) user(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIsPermanent(err)
	}
	return usr, nil
}

func (u *FulfillmentUseCase) link(path, key, value string) string {
	return u.baseURL + path + "?" + url.Values{key: {value}}.Encode()
}

// notFoundIsPermanent stops retries for records deleted after the event was written.
func notFoundIsPermanent(err error) error {
	for _, target := range []error{
		domainErrors.ErrOrderNotFound,
		domainErrors.ErrUserNotFound,
		domainErrors.ErrBookingNotFound,
		domainErrors.ErrEnrollmentNotFound,
	} {
		if errors.Is(err, target) {
			return permanent(err)
		}
	}
	return err
}

func permanent(err error) error {
	return fmt.Errorf("%w: %w", domainErrors.ErrPermanent, err)
}
