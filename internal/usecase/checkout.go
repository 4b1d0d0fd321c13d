package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/mysticmart/internal/adapter/razorpay"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

const defaultCurrency = "INR"

var minorUnits = decimal.NewFromInt(100)

// Notifier wakes the outbox dispatcher after new events are committed.
type Notifier interface {
	Notify()
}

// ProductInvalidator drops cached product listings after stock changes.
type ProductInvalidator interface {
	InvalidateProducts(ctx context.Context)
}

var (
	orderEvents      = []model.EventKind{model.EventShipmentCreate, model.EventOrderConfirmationEmail, model.EventOrderPaid}
	bookingEvents    = []model.EventKind{model.EventBookingConfirmationMail}
	enrollmentEvents = []model.EventKind{model.EventEnrollmentConfirmation}
)

// CheckoutUseCase turns verified gateway payments into orders, bookings and enrollments.
type CheckoutUseCase struct {
	gateway     razorpay.Gateway
	checkout    repository.CheckoutRepository
	orders      repository.OrderRepository
	bookings    repository.BookingRepository
	enrollments repository.EnrollmentRepository
	cart        repository.CartRepository
	products    repository.ProductRepository
	services    repository.ServiceRepository
	courses     repository.CourseRepository
	notifier    Notifier
	catalog     ProductInvalidator
	logger      *slog.Logger
}

// CheckoutDeps groups the collaborators of CheckoutUseCase.
type CheckoutDeps struct {
	Gateway     razorpay.Gateway
	Checkout    repository.CheckoutRepository
	Orders      repository.OrderRepository
	Bookings    repository.BookingRepository
	Enrollments repository.EnrollmentRepository
	Cart        repository.CartRepository
	Products    repository.ProductRepository
	Services    repository.ServiceRepository
	Courses     repository.CourseRepository
	Notifier    Notifier
	Catalog     ProductInvalidator
	Logger      *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(d CheckoutDeps) *CheckoutUseCase {
	return &CheckoutUseCase{
		gateway:     d.Gateway,
		checkout:    d.Checkout,
		orders:      d.Orders,
		bookings:    d.Bookings,
		enrollments: d.Enrollments,
		cart:        d.Cart,
		products:    d.Products,
		services:    d.Services,
		courses:     d.Courses,
		notifier:    d.Notifier,
		catalog:     d.Catalog,
		logger:      d.Logger,
	}
}

// CreatePaymentOrder opens a gateway order and returns it with the public key id.
func (u *CheckoutUseCase) CreatePaymentOrder(ctx context.Context, intent model.PaymentIntent) (*model.GatewayOrder, string, error) {
	if !intent.Amount.IsPositive() {
		return nil, "", domainErrors.ErrInvalidAmount
	}
	kind := model.PaymentTypeOrder
	if intent.Type != "" {
		parsed, ok := model.ParsePaymentType(intent.Type)
		if !ok {
			return nil, "", domainErrors.ErrInvalidType
		}
		kind = parsed
	}
	currency := strings.ToUpper(strings.TrimSpace(intent.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	notes := make(map[string]string, len(intent.Notes)+1)
	for k, v := range intent.Notes {
		notes[k] = v
	}
	notes["type"] = string(kind)

	order, err := u.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   intent.Amount.Mul(minorUnits).Round(0).IntPart(),
		Currency: currency,
		Receipt:  "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Notes:    notes,
	})
	if err != nil {
		return nil, "", err
	}
	return order, u.gateway.KeyID(), nil
}

// VerifyPayment checks the gateway signature and records the purchase exactly once per payment id.
// p may be nil for guest service and course purchases.
func (u *CheckoutUseCase) VerifyPayment(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	if !req.Proof.Complete() {
		return nil, domainErrors.ErrMissingFields
	}
	if err := u.gateway.VerifySignature(req.Proof); err != nil {
		return nil, err
	}
	kind, ok := model.ParsePaymentType(req.Type)
	if !ok {
		return nil, domainErrors.ErrInvalidType
	}

	var (
		result *model.PaymentResult
		err    error
	)
	switch kind {
	case model.PaymentTypeOrder:
		result, err = u.recordOrder(ctx, p, req)
	case model.PaymentTypeService:
		result, err = u.recordBooking(ctx, p, req)
	case model.PaymentTypeCourse:
		result, err = u.recordEnrollment(ctx, p, req)
	}
	if err != nil {
		return nil, err
	}

	if result.Created {
		u.logger.Info("payment recorded",
			slog.String("payment_id", result.PaymentID),
			slog.String("type", string(result.Type)),
			slog.Int64("record_id", result.RecordID))
		if u.notifier != nil {
			u.notifier.Notify()
		}
		if result.Type == model.PaymentTypeOrder && u.catalog != nil {
			u.catalog.InvalidateProducts(ctx)
		}
	}
	return result, nil
}

func (u *CheckoutUseCase) recordOrder(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	if p == nil || p.Domain() != model.DomainCustomer {
		return nil, domainErrors.ErrUnauthorized
	}

	if existing, err := u.orders.GetByPaymentID(ctx, req.Proof.PaymentID); err == nil {
		return orderResult(existing, false), nil
	} else if !errors.Is(err, domainErrors.ErrOrderNotFound) {
		return nil, err
	}

	items, err := u.priceItems(ctx, p.SubjectID(), req.Items)
	if err != nil {
		return nil, err
	}

	address := req.Address
	if err := requireText(address.Name, address.Address, address.City, address.Pincode); err != nil {
		return nil, err
	}
	if address.Email == "" {
		if c, ok := p.(model.CustomerPrincipal); ok {
			address.Email = c.User.Email
		}
	}

	order, created, err := u.checkout.PlaceOrder(ctx, model.Order{
		UserID:          p.SubjectID(),
		Items:           items,
		TotalAmount:     model.SumItems(items),
		Currency:        defaultCurrency,
		PaymentID:       req.Proof.PaymentID,
		GatewayOrderID:  req.Proof.GatewayOrderID,
		ShippingAddress: address,
	}, orderEvents)
	if err != nil {
		return nil, err
	}
	return orderResult(order, created), nil
}

// priceItems freezes product names and prices from the catalog. An empty request falls back to the cart.
func (u *CheckoutUseCase) priceItems(ctx context.Context, userID int64, requested []model.OrderItem) ([]model.OrderItem, error) {
	if len(requested) == 0 {
		lines, err := u.cart.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			requested = append(requested, model.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
		}
	}
	if len(requested) == 0 {
		return nil, domainErrors.ErrMissingFields
	}

	items := make([]model.OrderItem, 0, len(requested))
	for _, item := range requested {
		if item.ProductID <= 0 {
			return nil, domainErrors.ErrMissingFields
		}
		if item.Quantity < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
		product, err := u.products.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if item.Quantity > product.Stock {
			return nil, domainErrors.ErrInsufficientStock
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Name:      product.Name,
		})
	}
	return items, nil
}

func (u *CheckoutUseCase) recordBooking(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	if existing, err := u.bookings.GetByPaymentID(ctx, req.Proof.PaymentID); err == nil {
		return bookingResult(existing, false), nil
	} else if !errors.Is(err, domainErrors.ErrBookingNotFound) {
		return nil, err
	}

	if req.ItemID <= 0 {
		return nil, domainErrors.ErrMissingFields
	}
	service, err := u.services.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	contact, err := buyerContact(p, req.Contact)
	if err != nil {
		return nil, err
	}

	booking, created, err := u.checkout.RecordBooking(ctx, model.ServiceBooking{
		UserID:         customerID(p),
		ServiceID:      service.ID,
		Contact:        contact,
		ScheduledAt:    req.ScheduledAt,
		Notes:          strings.TrimSpace(req.Notes),
		Amount:         service.Price,
		PaymentID:      req.Proof.PaymentID,
		GatewayOrderID: req.Proof.GatewayOrderID,
	}, bookingEvents)
	if err != nil {
		return nil, err
	}
	return bookingResult(booking, created), nil
}

func (u *CheckoutUseCase) recordEnrollment(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	if existing, err := u.enrollments.GetByPaymentID(ctx, req.Proof.PaymentID); err == nil {
		return enrollmentResult(existing, false), nil
	} else if !errors.Is(err, domainErrors.ErrEnrollmentNotFound) {
		return nil, err
	}

	if req.ItemID <= 0 {
		return nil, domainErrors.ErrMissingFields
	}
	course, err := u.courses.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	contact, err := buyerContact(p, req.Contact)
	if err != nil {
		return nil, err
	}

	enrollment, created, err := u.checkout.RecordEnrollment(ctx, model.CourseEnrollment{
		UserID:         customerID(p),
		CourseID:       course.ID,
		Contact:        contact,
		Amount:         course.Price,
		PaymentID:      req.Proof.PaymentID,
		GatewayOrderID: req.Proof.GatewayOrderID,
	}, enrollmentEvents)
	if err != nil {
		return nil, err
	}
	return enrollmentResult(enrollment, created), nil
}

// buyerContact fills blanks from the signed-in customer. Guests must supply name and email.
func buyerContact(p model.Principal, contact model.Contact) (model.Contact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = NormalizeEmail(contact.Email)
	contact.Phone = strings.TrimSpace(contact.Phone)
	if c, ok := p.(model.CustomerPrincipal); ok {
		if contact.Name == "" {
			contact.Name = c.User.Name
		}
		if contact.Email == "" {
			contact.Email = c.User.Email
		}
	}
	if err := requireText(contact.Name, contact.Email); err != nil {
		return model.Contact{}, err
	}
	if err := ValidateEmail(contact.Email); err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

func customerID(p model.Principal) *int64 {
	if p == nil || p.Domain() != model.DomainCustomer {
		return nil
	}
	id := p.SubjectID()
	return &id
}

func orderResult(o *model.Order, created bool) *model.PaymentResult {
	return &model.PaymentResult{PaymentID: o.PaymentID, RecordID: o.ID, Type: model.PaymentTypeOrder, Created: created}
}

func bookingResult(b *model.ServiceBooking, created bool) *model.PaymentResult {
	return &model.PaymentResult{PaymentID: b.PaymentID, RecordID: b.ID, Type: model.PaymentTypeService, Created: created}
}

func enrollmentResult(e *model.CourseEnrollment, created bool) *model.PaymentResult {
	return &model.PaymentResult{PaymentID: e.PaymentID, RecordID: e.ID, Type: model.PaymentTypeCourse, Created: created}
}
