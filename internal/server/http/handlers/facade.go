package handlers

import (
	"context"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// AuthFacade describes customer account operations required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, name string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	OAuthLogin(ctx context.Context, identity model.OAuthIdentity) (*model.User, string, error)
	ResolveCustomer(ctx context.Context, token string) (model.Principal, error)
}

// AdminAuthFacade describes operator session operations.
type AdminAuthFacade interface {
	AdminLogin(ctx context.Context, email, password string) (*model.Admin, string, error)
	AdminLogout(ctx context.Context, token string) error
	ResolveAdmin(ctx context.Context, token string) (model.Principal, error)
}

// CatalogFacade exposes products, services and courses.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	Services(ctx context.Context, activeOnly bool) ([]model.Service, error)
	Service(ctx context.Context, id int64) (*model.Service, error)
	CreateService(ctx context.Context, s model.Service) (*model.Service, error)
	UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error

	Courses(ctx context.Context, activeOnly bool) ([]model.Course, error)
	Course(ctx context.Context, id int64) (*model.Course, error)
	CreateCourse(ctx context.Context, c model.Course) (*model.Course, error)
	UpdateCourse(ctx context.Context, id int64, patch model.CoursePatch) (*model.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

// CartFacade exposes the customer cart.
type CartFacade interface {
	Cart(ctx context.Context, p model.Principal) ([]model.CartItem, error)
	AddToCart(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, p model.Principal, itemID int64, quantity int) (*model.CartItem, error)
	RemoveCartItem(ctx context.Context, p model.Principal, itemID int64) error
	ClearCart(ctx context.Context, p model.Principal) error
}

// CheckoutFacade opens gateway orders and records verified payments.
type CheckoutFacade interface {
	CreatePaymentOrder(ctx context.Context, intent model.PaymentIntent) (*model.GatewayOrder, string, error)
	VerifyPayment(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error)
}

// OrderFacade exposes order history, status changes and tracking.
type OrderFacade interface {
	Orders(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, p model.Principal, id int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error)
	BulkUpdateOrderStatus(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error)
	DeleteOrder(ctx context.Context, p model.Principal, id int64) error
	Tracking(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error)
	AppendTracking(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error)
	EditTracking(ctx context.Context, p model.Principal, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error)
}

// BookingFacade exposes service bookings and course enrollments.
type BookingFacade interface {
	MyBookings(ctx context.Context, p model.Principal, page model.Page) ([]model.ServiceBooking, error)
	RescheduleBooking(ctx context.Context, p model.Principal, id int64, change model.Reschedule) (*model.ServiceBooking, error)
	CancelBooking(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error)
	Bookings(ctx context.Context, status string, page model.Page) ([]model.ServiceBooking, error)
	SetBookingStatus(ctx context.Context, id int64, status string) (*model.ServiceBooking, error)
	DeleteBooking(ctx context.Context, id int64) error
	Enrollments(ctx context.Context, status string, page model.Page) ([]model.CourseEnrollment, error)
	SetEnrollmentStatus(ctx context.Context, id int64, status string) (*model.CourseEnrollment, error)
}

// MessageFacade exposes the contact form inbox.
type MessageFacade interface {
	SubmitMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
	Messages(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// BackOfficeFacade exposes customer management and the dashboard.
type BackOfficeFacade interface {
	Users(ctx context.Context, search string, page model.Page) ([]model.User, error)
	User(ctx context.Context, id int64) (*model.User, error)
	SetUserRole(ctx context.Context, id int64, role string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*model.Stats, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	AdminAuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	OrderFacade
	BookingFacade
	MessageFacade
	BackOfficeFacade
}
