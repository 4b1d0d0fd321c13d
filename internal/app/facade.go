package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/usecase"
)

// FacadeDeps lists the use cases the storefront facade fronts.
type FacadeDeps struct {
	fx.In

	Auth      *usecase.AuthUseCase
	AdminAuth *usecase.AdminAuthUseCase
	Catalog   *usecase.CatalogUseCase
	Cart      *usecase.CartUseCase
	Checkout  *usecase.CheckoutUseCase
	Orders    *usecase.OrderUseCase
	Bookings  *usecase.BookingUseCase
	Messages  *usecase.MessageUseCase
	Admin     *usecase.AdminUseCase
}

// StoreFacade is the single entry point the HTTP layer talks to.
type StoreFacade struct {
	auth      *usecase.AuthUseCase
	adminAuth *usecase.AdminAuthUseCase
	catalog   *usecase.CatalogUseCase
	cart      *usecase.CartUseCase
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderUseCase
	bookings  *usecase.BookingUseCase
	messages  *usecase.MessageUseCase
	admin     *usecase.AdminUseCase
}

func NewStoreFacade(d FacadeDeps) *StoreFacade {
	return &StoreFacade{
		auth:      d.Auth,
		adminAuth: d.AdminAuth,
		catalog:   d.Catalog,
		cart:      d.Cart,
		checkout:  d.Checkout,
		orders:    d.Orders,
		bookings:  d.Bookings,
		messages:  d.Messages,
		admin:     d.Admin,
	}
}

func (f *StoreFacade) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, password, name)
}

func (f *StoreFacade) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *StoreFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *StoreFacade) VerifyEmail(ctx context.Context, token string) error {
	return f.auth.VerifyEmail(ctx, token)
}

func (f *StoreFacade) ForgotPassword(ctx context.Context, email string) error {
	return f.auth.ForgotPassword(ctx, email)
}

func (f *StoreFacade) ResetPassword(ctx context.Context, token, password string) error {
	return f.auth.ResetPassword(ctx, token, password)
}

func (f *StoreFacade) OAuthLogin(ctx context.Context, identity model.OAuthIdentity) (*model.User, string, error) {
	return f.auth.OAuthLogin(ctx, identity)
}

func (f *StoreFacade) ResolveCustomer(ctx context.Context, token string) (model.Principal, error) {
	return f.auth.Resolve(ctx, token)
}

func (f *StoreFacade) AdminLogin(ctx context.Context, email, password string) (*model.Admin, string, error) {
	return f.adminAuth.Login(ctx, email, password)
}

func (f *StoreFacade) AdminLogout(ctx context.Context, token string) error {
	return f.adminAuth.Logout(ctx, token)
}

func (f *StoreFacade) ResolveAdmin(ctx context.Context, token string) (model.Principal, error) {
	return f.adminAuth.Resolve(ctx, token)
}

// EnsureBootstrapAdmin seeds the first operator account.
func (f *StoreFacade) EnsureBootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	return f.adminAuth.EnsureBootstrap(ctx, email, password)
}

func (f *StoreFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.Products(ctx, filter)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, p)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, id, patch)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *StoreFacade) Services(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	return f.catalog.Services(ctx, activeOnly)
}

func (f *StoreFacade) Service(ctx context.Context, id int64) (*model.Service, error) {
	return f.catalog.Service(ctx, id)
}

func (f *StoreFacade) CreateService(ctx context.Context, s model.Service) (*model.Service, error) {
	return f.catalog.CreateService(ctx, s)
}

func (f *StoreFacade) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	return f.catalog.UpdateService(ctx, id, patch)
}

func (f *StoreFacade) DeleteService(ctx context.Context, id int64) error {
	return f.catalog.DeleteService(ctx, id)
}

func (f *StoreFacade) Courses(ctx context.Context, activeOnly bool) ([]model.Course, error) {
	return f.catalog.Courses(ctx, activeOnly)
}

func (f *StoreFacade) Course(ctx context.Context, id int64) (*model.Course, error) {
	return f.catalog.Course(ctx, id)
}

func (f *StoreFacade) CreateCourse(ctx context.Context, c model.Course) (*model.Course, error) {
	return f.catalog.CreateCourse(ctx, c)
}

func (f *StoreFacade) UpdateCourse(ctx context.Context, id int64, patch model.CoursePatch) (*model.Course, error) {
	return f.catalog.UpdateCourse(ctx, id, patch)
}

func (f *StoreFacade) DeleteCourse(ctx context.Context, id int64) error {
	return f.catalog.DeleteCourse(ctx, id)
}

func (f *StoreFacade) Cart(ctx context.Context, p model.Principal) ([]model.CartItem, error) {
	return f.cart.List(ctx, p)
}

func (f *StoreFacade) AddToCart(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error) {
	return f.cart.Add(ctx, p, productID, quantity)
}

func (f *StoreFacade) UpdateCartItem(ctx context.Context, p model.Principal, itemID int64, quantity int) (*model.CartItem, error) {
	return f.cart.Update(ctx, p, itemID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, p model.Principal, itemID int64) error {
	return f.cart.Delete(ctx, p, itemID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, p model.Principal) error {
	return f.cart.Clear(ctx, p)
}

func (f *StoreFacade) CreatePaymentOrder(ctx context.Context, intent model.PaymentIntent) (*model.GatewayOrder, string, error) {
	return f.checkout.CreatePaymentOrder(ctx, intent)
}

func (f *StoreFacade) VerifyPayment(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	return f.checkout.VerifyPayment(ctx, p, req)
}

func (f *StoreFacade) Orders(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, p, filter)
}

func (f *StoreFacade) Order(ctx context.Context, p model.Principal, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, p, id)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, p, id, req)
}

func (f *StoreFacade) BulkUpdateOrderStatus(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error) {
	return f.orders.BulkUpdateStatus(ctx, p, ids, req)
}

func (f *StoreFacade) DeleteOrder(ctx context.Context, p model.Principal, id int64) error {
	return f.orders.Delete(ctx, p, id)
}

func (f *StoreFacade) Tracking(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error) {
	return f.orders.Tracking(ctx, p, orderID)
}

func (f *StoreFacade) AppendTracking(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	return f.orders.AppendTracking(ctx, p, entry)
}

func (f *StoreFacade) EditTracking(ctx context.Context, p model.Principal, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error) {
	return f.orders.EditTracking(ctx, p, id, update)
}

func (f *StoreFacade) MyBookings(ctx context.Context, p model.Principal, page model.Page) ([]model.ServiceBooking, error) {
	return f.bookings.MyBookings(ctx, p, page)
}

func (f *StoreFacade) RescheduleBooking(ctx context.Context, p model.Principal, id int64, change model.Reschedule) (*model.ServiceBooking, error) {
	return f.bookings.Reschedule(ctx, p, id, change)
}

func (f *StoreFacade) CancelBooking(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error) {
	return f.bookings.Cancel(ctx, p, id)
}

func (f *StoreFacade) Bookings(ctx context.Context, status string, page model.Page) ([]model.ServiceBooking, error) {
	return f.bookings.Bookings(ctx, status, page)
}

func (f *StoreFacade) SetBookingStatus(ctx context.Context, id int64, status string) (*model.ServiceBooking, error) {
	return f.bookings.SetBookingStatus(ctx, id, status)
}

func (f *StoreFacade) DeleteBooking(ctx context.Context, id int64) error {
	return f.bookings.DeleteBooking(ctx, id)
}

func (f *StoreFacade) Enrollments(ctx context.Context, status string, page model.Page) ([]model.CourseEnrollment, error) {
	return f.bookings.Enrollments(ctx, status, page)
}

func (f *StoreFacade) SetEnrollmentStatus(ctx context.Context, id int64, status string) (*model.CourseEnrollment, error) {
	return f.bookings.SetEnrollmentStatus(ctx, id, status)
}

func (f *StoreFacade) SubmitMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	return f.messages.Submit(ctx, msg)
}

func (f *StoreFacade) Messages(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
	return f.messages.List(ctx, unreadOnly, page)
}

func (f *StoreFacade) MarkMessageRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
	return f.messages.MarkRead(ctx, id, read)
}

func (f *StoreFacade) DeleteMessage(ctx context.Context, id int64) error {
	return f.messages.Delete(ctx, id)
}

func (f *StoreFacade) Users(ctx context.Context, search string, page model.Page) ([]model.User, error) {
	return f.admin.Users(ctx, search, page)
}

func (f *StoreFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.admin.User(ctx, id)
}

func (f *StoreFacade) SetUserRole(ctx context.Context, id int64, role string) (*model.User, error) {
	return f.admin.SetRole(ctx, id, role)
}

func (f *StoreFacade) DeleteUser(ctx context.Context, id int64) error {
	return f.admin.DeleteUser(ctx, id)
}

func (f *StoreFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.admin.Stats(ctx)
}
