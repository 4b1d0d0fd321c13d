package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/adapter/razorpay"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewAdminAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	newCheckoutUseCase,
	NewOrderUseCase,
	NewBookingUseCase,
	NewMessageUseCase,
	NewAdminUseCase,
	NewFulfillmentUseCase,
)

type checkoutParams struct {
	fx.In

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
	Catalog     *CatalogUseCase
	Logger      *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(CheckoutDeps{
		Gateway:     p.Gateway,
		Checkout:    p.Checkout,
		Orders:      p.Orders,
		Bookings:    p.Bookings,
		Enrollments: p.Enrollments,
		Cart:        p.Cart,
		Products:    p.Products,
		Services:    p.Services,
		Courses:     p.Courses,
		Notifier:    p.Notifier,
		Catalog:     p.Catalog,
		Logger:      p.Logger,
	})
}
