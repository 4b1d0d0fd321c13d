package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mysticmart/internal/adapter/razorpay"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
)

type checkoutFixture struct {
	gateway  *testhelpers.GatewayStub
	checkout *testhelpers.CheckoutRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	bookings *testhelpers.BookingRepositoryStub
	cart     *testhelpers.CartRepositoryStub
	notifier *testhelpers.NotifierStub
	cache    *testhelpers.MemoryCache
	catalog  *CatalogUseCase
	uc       *CheckoutUseCase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		gateway:  &testhelpers.GatewayStub{},
		checkout: &testhelpers.CheckoutRepositoryStub{},
		orders:   testhelpers.NewOrderRepositoryStub(),
		bookings: testhelpers.NewBookingRepositoryStub(),
		cart:     testhelpers.NewCartRepositoryStub(),
		notifier: &testhelpers.NotifierStub{},
		cache:    testhelpers.NewMemoryCache(),
	}
	products := testhelpers.NewProductRepositoryStub(
		model.Product{ID: 1, Name: "Tarot Deck", Price: decimal.RequireFromString("799.50"), Stock: 4},
		model.Product{ID: 2, Name: "Incense", Price: decimal.NewFromInt(120), Stock: 10},
	)
	f.catalog = NewCatalogUseCase(products, testhelpers.NewServiceRepositoryStub(), testhelpers.NewCourseRepositoryStub(), f.cache, testConfig(), discardLogger())
	f.uc = NewCheckoutUseCase(CheckoutDeps{
		Gateway:     f.gateway,
		Checkout:    f.checkout,
		Orders:      f.orders,
		Bookings:    f.bookings,
		Enrollments: testhelpers.NewEnrollmentRepositoryStub(),
		Cart:        f.cart,
		Products:    products,
		Services:    testhelpers.NewServiceRepositoryStub(model.Service{ID: 5, Name: "Astrology Consult", Price: decimal.NewFromInt(2500), Active: true}),
		Courses:     testhelpers.NewCourseRepositoryStub(model.Course{ID: 8, Title: "Crystal Healing", Price: decimal.NewFromInt(4999), Active: true}),
		Notifier:    f.notifier,
		Catalog:     f.catalog,
		Logger:      discardLogger(),
	})
	return f
}

func (f *checkoutFixture) productsVersion() string {
	v, _, _ := f.cache.Get(context.Background(), f.cache.Key("products", "version"))
	return v
}

func proof() model.PaymentProof {
	return model.PaymentProof{GatewayOrderID: "order_abc", PaymentID: "pay_123", Signature: "sig"}
}

func address() model.ShippingAddress {
	return model.ShippingAddress{Name: "Asha", Address: "12 Lotus Lane", City: "Pune", Pincode: "411001"}
}

func TestCreatePaymentOrder(t *testing.T) {
	f := newCheckoutFixture()
	order, keyID, err := f.uc.CreatePaymentOrder(context.Background(), model.PaymentIntent{
		Amount: decimal.RequireFromString("1499.99"),
		Type:   "service",
		Notes:  map[string]string{"serviceId": "5"},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if keyID != "rzp_test_key" || order.ID != "order_test" {
		t.Fatalf("unexpected result %+v %q", order, keyID)
	}
	req := f.gateway.Requests[0]
	if req.Amount != 149999 || req.Currency != "INR" {
		t.Fatalf("expected 149999 paise in INR, got %d %s", req.Amount, req.Currency)
	}
	if !strings.HasPrefix(req.Receipt, "rcpt_") || len(req.Receipt) != len("rcpt_")+32 {
		t.Fatalf("unexpected receipt %q", req.Receipt)
	}
	if req.Notes["type"] != "service" || req.Notes["serviceId"] != "5" {
		t.Fatalf("unexpected notes %v", req.Notes)
	}
}

func TestCreatePaymentOrderValidation(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	if _, _, err := f.uc.CreatePaymentOrder(ctx, model.PaymentIntent{Amount: decimal.Zero}); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, _, err := f.uc.CreatePaymentOrder(ctx, model.PaymentIntent{Amount: decimal.NewFromInt(1), Type: "gift"}); !errors.Is(err, domainErrors.ErrInvalidType) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	f.gateway.CreateFn = func(context.Context, razorpay.OrderRequest) (*model.GatewayOrder, error) {
		return nil, domainErrors.ErrPaymentNotConfigured
	}
	if _, _, err := f.uc.CreatePaymentOrder(ctx, model.PaymentIntent{Amount: decimal.NewFromInt(1)}); !errors.Is(err, domainErrors.ErrPaymentNotConfigured) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestVerifyPaymentRejectsBeforeWriting(t *testing.T) {
	cases := []struct {
		name   string
		verify func(model.PaymentProof) error
		req    model.PaymentVerification
		p      model.Principal
		want   error
	}{
		{"missing signature", nil, model.PaymentVerification{Proof: model.PaymentProof{GatewayOrderID: "o", PaymentID: "p"}, Type: "order"}, testhelpers.Customer(1), domainErrors.ErrMissingFields},
		{"not configured", func(model.PaymentProof) error { return domainErrors.ErrPaymentNotConfigured }, model.PaymentVerification{Proof: proof(), Type: "order"}, testhelpers.Customer(1), domainErrors.ErrPaymentNotConfigured},
		{"bad signature", func(model.PaymentProof) error { return domainErrors.ErrInvalidSignature }, model.PaymentVerification{Proof: proof(), Type: "order"}, testhelpers.Customer(1), domainErrors.ErrInvalidSignature},
		{"unknown type", nil, model.PaymentVerification{Proof: proof(), Type: "gift"}, testhelpers.Customer(1), domainErrors.ErrInvalidType},
		{"guest order", nil, model.PaymentVerification{Proof: proof(), Type: "order"}, nil, domainErrors.ErrUnauthorized},
		{"admin order", nil, model.PaymentVerification{Proof: proof(), Type: "order"}, testhelpers.Operator(1), domainErrors.ErrUnauthorized},
		{"empty cart", nil, model.PaymentVerification{Proof: proof(), Type: "order", Address: address()}, testhelpers.Customer(1), domainErrors.ErrMissingFields},
		{"no address", nil, model.PaymentVerification{Proof: proof(), Type: "order", Items: []model.OrderItem{{ProductID: 1, Quantity: 1}}}, testhelpers.Customer(1), domainErrors.ErrMissingFields},
		{"over stock", nil, model.PaymentVerification{Proof: proof(), Type: "order", Address: address(), Items: []model.OrderItem{{ProductID: 1, Quantity: 5}}}, testhelpers.Customer(1), domainErrors.ErrInsufficientStock},
		{"unknown service", nil, model.PaymentVerification{Proof: proof(), Type: "service", ItemID: 77, Contact: model.Contact{Name: "G", Email: "g@example.com"}}, nil, domainErrors.ErrServiceNotFound},
		{"guest without contact", nil, model.PaymentVerification{Proof: proof(), Type: "course", ItemID: 8}, nil, domainErrors.ErrMissingFields},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture()
			f.gateway.VerifyFn = tc.verify
			if _, err := f.uc.VerifyPayment(context.Background(), tc.p, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(f.checkout.Orders)+len(f.checkout.Bookings)+len(f.checkout.Enrollments) != 0 {
				t.Fatal("no record may be written")
			}
			if f.notifier.Count() != 0 {
				t.Fatal("dispatcher must not be woken")
			}
		})
	}
}

func TestVerifyPaymentPlacesOrderWithCatalogPrices(t *testing.T) {
	f := newCheckoutFixture()
	customer := testhelpers.Customer(3)

	result, err := f.uc.VerifyPayment(context.Background(), customer, model.PaymentVerification{
		Proof:   proof(),
		Type:    "order",
		Address: address(),
		Items: []model.OrderItem{
			{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(1)},
			{ProductID: 2, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !result.Created || result.Type != model.PaymentTypeOrder || result.PaymentID != "pay_123" || result.RecordID != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	placed := f.checkout.Orders[0]
	if placed.UserID != 3 || placed.GatewayOrderID != "order_abc" || placed.Currency != "INR" {
		t.Fatalf("unexpected order %+v", placed)
	}
	if !placed.TotalAmount.Equal(decimal.RequireFromString("1719.00")) {
		t.Fatalf("expected total from catalog prices, got %s", placed.TotalAmount)
	}
	if placed.Items[0].Name != "Tarot Deck" || !placed.Items[0].Price.Equal(decimal.RequireFromString("799.50")) {
		t.Fatalf("client price must be replaced, got %+v", placed.Items[0])
	}
	if placed.ShippingAddress.Email != customer.User.Email {
		t.Fatalf("expected email to default to the customer, got %q", placed.ShippingAddress.Email)
	}
	wantEvents := []model.EventKind{model.EventShipmentCreate, model.EventOrderConfirmationEmail, model.EventOrderPaid}
	if !reflect.DeepEqual(f.checkout.Events[0], wantEvents) {
		t.Fatalf("unexpected events %v", f.checkout.Events[0])
	}
	if f.notifier.Count() != 1 {
		t.Fatalf("expected dispatcher wake-up, got %d", f.notifier.Count())
	}
}

func TestVerifyPaymentOrderInvalidatesProductListings(t *testing.T) {
	f := newCheckoutFixture()
	ctx := context.Background()
	if _, err := f.catalog.Products(ctx, model.ProductFilter{InStock: true}); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if v := f.productsVersion(); v != "" {
		t.Fatalf("expected no version before checkout, got %q", v)
	}

	req := model.PaymentVerification{Proof: proof(), Type: "order", Address: address(), Items: []model.OrderItem{{ProductID: 1, Quantity: 1}}}
	if _, err := f.uc.VerifyPayment(ctx, testhelpers.Customer(3), req); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if v := f.productsVersion(); v != "1" {
		t.Fatalf("expected product listings to be invalidated, got version %q", v)
	}

	if _, err := f.uc.VerifyPayment(ctx, nil, model.PaymentVerification{Proof: proof(), Type: "service", ItemID: 5, Contact: model.Contact{Name: "Guest", Email: "guest@example.com"}}); err != nil {
		t.Fatalf("verify booking failed: %v", err)
	}
	if v := f.productsVersion(); v != "1" {
		t.Fatalf("bookings leave stock untouched, got version %q", v)
	}
}

func TestVerifyPaymentFallsBackToCart(t *testing.T) {
	f := newCheckoutFixture()
	if _, err := f.cart.Upsert(context.Background(), 3, 2, 4); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := f.uc.VerifyPayment(context.Background(), testhelpers.Customer(3), model.PaymentVerification{
		Proof: proof(), Type: "order", Address: address(),
	}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	items := f.checkout.Orders[0].Items
	if len(items) != 1 || items[0].ProductID != 2 || items[0].Quantity != 4 {
		t.Fatalf("expected cart lines to be ordered, got %+v", items)
	}
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.Orders[9] = &model.Order{ID: 9, UserID: 3, PaymentID: "pay_123", Status: model.OrderStatusPaid}

	result, err := f.uc.VerifyPayment(context.Background(), testhelpers.Customer(3), model.PaymentVerification{Proof: proof(), Type: "order"})
	if err != nil {
		t.Fatalf("duplicate verify failed: %v", err)
	}
	if result.Created || result.RecordID != 9 {
		t.Fatalf("expected existing order, got %+v", result)
	}
	if len(f.checkout.Orders) != 0 || f.notifier.Count() != 0 || f.productsVersion() != "" {
		t.Fatal("duplicate verification must not write")
	}
}

func TestVerifyPaymentRecordsGuestBooking(t *testing.T) {
	f := newCheckoutFixture()
	when := time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC)

	result, err := f.uc.VerifyPayment(context.Background(), nil, model.PaymentVerification{
		Proof:       proof(),
		Type:        "service",
		ItemID:      5,
		Contact:     model.Contact{Name: " Guest ", Email: "Guest@Example.com", Phone: "999"},
		ScheduledAt: &when,
		Notes:       " evening please ",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Type != model.PaymentTypeService || !result.Created {
		t.Fatalf("unexpected result %+v", result)
	}
	booking := f.checkout.Bookings[0]
	if booking.UserID != nil {
		t.Fatalf("guest booking must have no owner, got %v", *booking.UserID)
	}
	if booking.Contact.Email != "guest@example.com" || booking.Contact.Name != "Guest" || booking.Notes != "evening please" {
		t.Fatalf("unexpected contact %+v", booking)
	}
	if !booking.Amount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected catalog amount, got %s", booking.Amount)
	}
	if !reflect.DeepEqual(f.checkout.Events[0], []model.EventKind{model.EventBookingConfirmationMail}) {
		t.Fatalf("unexpected events %v", f.checkout.Events[0])
	}
}

func TestVerifyPaymentRecordsCustomerEnrollment(t *testing.T) {
	f := newCheckoutFixture()
	customer := testhelpers.Customer(4)

	result, err := f.uc.VerifyPayment(context.Background(), customer, model.PaymentVerification{Proof: proof(), Type: "course", ItemID: 8})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Type != model.PaymentTypeCourse {
		t.Fatalf("unexpected result %+v", result)
	}
	enrollment := f.checkout.Enrollments[0]
	if enrollment.UserID == nil || *enrollment.UserID != 4 {
		t.Fatalf("expected owner 4, got %v", enrollment.UserID)
	}
	if enrollment.Contact.Email != customer.User.Email || enrollment.Contact.Name != customer.User.Name {
		t.Fatalf("expected contact from customer, got %+v", enrollment.Contact)
	}
}
