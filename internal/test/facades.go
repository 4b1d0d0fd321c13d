package test

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// StoreFacadeStub implements the handler facades. Unset functions return a small canned value.
type StoreFacadeStub struct {
	RegisterFn        func(ctx context.Context, email, password, name string) (*model.User, string, error)
	LoginFn           func(ctx context.Context, email, password string) (*model.User, string, error)
	LogoutFn          func(ctx context.Context, token string) error
	VerifyEmailFn     func(ctx context.Context, token string) error
	ForgotPasswordFn  func(ctx context.Context, email string) error
	ResetPasswordFn   func(ctx context.Context, token, password string) error
	OAuthLoginFn      func(ctx context.Context, identity model.OAuthIdentity) (*model.User, string, error)
	ResolveCustomerFn func(ctx context.Context, token string) (model.Principal, error)

	AdminLoginFn   func(ctx context.Context, email, password string) (*model.Admin, string, error)
	AdminLogoutFn  func(ctx context.Context, token string) error
	ResolveAdminFn func(ctx context.Context, token string) (model.Principal, error)

	ProductsFn      func(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	ProductFn       func(ctx context.Context, id int64) (*model.Product, error)
	CreateProductFn func(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProductFn func(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
	DeleteProductFn func(ctx context.Context, id int64) error
	ServicesFn      func(ctx context.Context, activeOnly bool) ([]model.Service, error)
	ServiceFn       func(ctx context.Context, id int64) (*model.Service, error)
	CreateServiceFn func(ctx context.Context, s model.Service) (*model.Service, error)
	UpdateServiceFn func(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error)
	DeleteServiceFn func(ctx context.Context, id int64) error
	CoursesFn       func(ctx context.Context, activeOnly bool) ([]model.Course, error)
	CourseFn        func(ctx context.Context, id int64) (*model.Course, error)
	CreateCourseFn  func(ctx context.Context, c model.Course) (*model.Course, error)
	UpdateCourseFn  func(ctx context.Context, id int64, patch model.CoursePatch) (*model.Course, error)
	DeleteCourseFn  func(ctx context.Context, id int64) error

	CartFn           func(ctx context.Context, p model.Principal) ([]model.CartItem, error)
	AddToCartFn      func(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error)
	UpdateCartItemFn func(ctx context.Context, p model.Principal, itemID int64, quantity int) (*model.CartItem, error)
	RemoveCartItemFn func(ctx context.Context, p model.Principal, itemID int64) error
	ClearCartFn      func(ctx context.Context, p model.Principal) error

	CreatePaymentOrderFn func(ctx context.Context, intent model.PaymentIntent) (*model.GatewayOrder, string, error)
	VerifyPaymentFn      func(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error)

	OrdersFn                func(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error)
	OrderFn                 func(ctx context.Context, p model.Principal, id int64) (*model.Order, error)
	UpdateOrderStatusFn     func(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error)
	BulkUpdateOrderStatusFn func(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error)
	DeleteOrderFn           func(ctx context.Context, p model.Principal, id int64) error
	TrackingFn              func(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error)
	AppendTrackingFn        func(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error)
	EditTrackingFn          func(ctx context.Context, p model.Principal, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error)

	MyBookingsFn          func(ctx context.Context, p model.Principal, page model.Page) ([]model.ServiceBooking, error)
	RescheduleBookingFn   func(ctx context.Context, p model.Principal, id int64, change model.Reschedule) (*model.ServiceBooking, error)
	CancelBookingFn       func(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error)
	BookingsFn            func(ctx context.Context, status string, page model.Page) ([]model.ServiceBooking, error)
	SetBookingStatusFn    func(ctx context.Context, id int64, status string) (*model.ServiceBooking, error)
	DeleteBookingFn       func(ctx context.Context, id int64) error
	EnrollmentsFn         func(ctx context.Context, status string, page model.Page) ([]model.CourseEnrollment, error)
	SetEnrollmentStatusFn func(ctx context.Context, id int64, status string) (*model.CourseEnrollment, error)

	SubmitMessageFn   func(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
	MessagesFn        func(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error)
	MarkMessageReadFn func(ctx context.Context, id int64, read bool) (*model.ContactMessage, error)
	DeleteMessageFn   func(ctx context.Context, id int64) error

	UsersFn       func(ctx context.Context, search string, page model.Page) ([]model.User, error)
	UserFn        func(ctx context.Context, id int64) (*model.User, error)
	SetUserRoleFn func(ctx context.Context, id int64, role string) (*model.User, error)
	DeleteUserFn  func(ctx context.Context, id int64) error
	StatsFn       func(ctx context.Context) (*model.Stats, error)
}

func (s StoreFacadeStub) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, name)
	}
	return &model.User{ID: 1, Email: email, Name: name, Role: model.RoleUser}, "session-token", nil
}

func (s StoreFacadeStub) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "session-token", nil
}

func (s StoreFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

func (s StoreFacadeStub) VerifyEmail(ctx context.Context, token string) error {
	if s.VerifyEmailFn != nil {
		return s.VerifyEmailFn(ctx, token)
	}
	return nil
}

func (s StoreFacadeStub) ForgotPassword(ctx context.Context, email string) error {
	if s.ForgotPasswordFn != nil {
		return s.ForgotPasswordFn(ctx, email)
	}
	return nil
}

func (s StoreFacadeStub) ResetPassword(ctx context.Context, token, password string) error {
	if s.ResetPasswordFn != nil {
		return s.ResetPasswordFn(ctx, token, password)
	}
	return nil
}

func (s StoreFacadeStub) OAuthLogin(ctx context.Context, identity model.OAuthIdentity) (*model.User, string, error) {
	if s.OAuthLoginFn != nil {
		return s.OAuthLoginFn(ctx, identity)
	}
	return &model.User{ID: 1, Email: identity.Email, Name: identity.Name, Role: model.RoleUser, EmailVerified: true}, "oauth-token", nil
}

func (s StoreFacadeStub) ResolveCustomer(ctx context.Context, token string) (model.Principal, error) {
	if s.ResolveCustomerFn != nil {
		return s.ResolveCustomerFn(ctx, token)
	}
	return nil, domainErrors.ErrUnauthorized
}

func (s StoreFacadeStub) AdminLogin(ctx context.Context, email, password string) (*model.Admin, string, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, email, password)
	}
	return &model.Admin{ID: 1, Email: email, Name: "ops"}, "admin-token", nil
}

func (s StoreFacadeStub) AdminLogout(ctx context.Context, token string) error {
	if s.AdminLogoutFn != nil {
		return s.AdminLogoutFn(ctx, token)
	}
	return nil
}

func (s StoreFacadeStub) ResolveAdmin(ctx context.Context, token string) (model.Principal, error) {
	if s.ResolveAdminFn != nil {
		return s.ResolveAdminFn(ctx, token)
	}
	return nil, domainErrors.ErrUnauthorized
}

func (s StoreFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return nil, nil
}

func (s StoreFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Amethyst", Price: decimal.NewFromInt(500), Stock: 3}, nil
}

func (s StoreFacadeStub) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, p)
	}
	p.ID = 1
	return &p, nil
}

func (s StoreFacadeStub) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, id, patch)
	}
	p := model.Product{ID: id}
	patch.Apply(&p)
	return &p, nil
}

func (s StoreFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Services(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	if s.ServicesFn != nil {
		return s.ServicesFn(ctx, activeOnly)
	}
	return nil, nil
}

func (s StoreFacadeStub) Service(ctx context.Context, id int64) (*model.Service, error) {
	if s.ServiceFn != nil {
		return s.ServiceFn(ctx, id)
	}
	return &model.Service{ID: id, Name: "Tarot reading", Active: true}, nil
}

func (s StoreFacadeStub) CreateService(ctx context.Context, svc model.Service) (*model.Service, error) {
	if s.CreateServiceFn != nil {
		return s.CreateServiceFn(ctx, svc)
	}
	svc.ID = 1
	return &svc, nil
}

func (s StoreFacadeStub) UpdateService(ctx context.Context, id int64, patch model.ServicePatch) (*model.Service, error) {
	if s.UpdateServiceFn != nil {
		return s.UpdateServiceFn(ctx, id, patch)
	}
	svc := model.Service{ID: id}
	patch.Apply(&svc)
	return &svc, nil
}

func (s StoreFacadeStub) DeleteService(ctx context.Context, id int64) error {
	if s.DeleteServiceFn != nil {
		return s.DeleteServiceFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Courses(ctx context.Context, activeOnly bool) ([]model.Course, error) {
	if s.CoursesFn != nil {
		return s.CoursesFn(ctx, activeOnly)
	}
	return nil, nil
}

func (s StoreFacadeStub) Course(ctx context.Context, id int64) (*model.Course, error) {
	if s.CourseFn != nil {
		return s.CourseFn(ctx, id)
	}
	return &model.Course{ID: id, Title: "Reiki level one", Active: true}, nil
}

func (s StoreFacadeStub) CreateCourse(ctx context.Context, c model.Course) (*model.Course, error) {
	if s.CreateCourseFn != nil {
		return s.CreateCourseFn(ctx, c)
	}
	c.ID = 1
	return &c, nil
}

func (s StoreFacadeStub) UpdateCourse(ctx context.Context, id int64, patch model.CoursePatch) (*model.Course, error) {
	if s.UpdateCourseFn != nil {
		return s.UpdateCourseFn(ctx, id, patch)
	}
	c := model.Course{ID: id}
	patch.Apply(&c)
	return &c, nil
}

func (s StoreFacadeStub) DeleteCourse(ctx context.Context, id int64) error {
	if s.DeleteCourseFn != nil {
		return s.DeleteCourseFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Cart(ctx context.Context, p model.Principal) ([]model.CartItem, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, p)
	}
	return nil, nil
}

func (s StoreFacadeStub) AddToCart(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error) {
	if s.AddToCartFn != nil {
		return s.AddToCartFn(ctx, p, productID, quantity)
	}
	return &model.CartItem{ID: 1, UserID: subject(p), ProductID: productID, Quantity: quantity}, nil
}

func (s StoreFacadeStub) UpdateCartItem(ctx context.Context, p model.Principal, itemID int64, quantity int) (*model.CartItem, error) {
	if s.UpdateCartItemFn != nil {
		return s.UpdateCartItemFn(ctx, p, itemID, quantity)
	}
	return &model.CartItem{ID: itemID, UserID: subject(p), Quantity: quantity}, nil
}

func (s StoreFacadeStub) RemoveCartItem(ctx context.Context, p model.Principal, itemID int64) error {
	if s.RemoveCartItemFn != nil {
		return s.RemoveCartItemFn(ctx, p, itemID)
	}
	return nil
}

func (s StoreFacadeStub) ClearCart(ctx context.Context, p model.Principal) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, p)
	}
	return nil
}

func (s StoreFacadeStub) CreatePaymentOrder(ctx context.Context, intent model.PaymentIntent) (*model.GatewayOrder, string, error) {
	if s.CreatePaymentOrderFn != nil {
		return s.CreatePaymentOrderFn(ctx, intent)
	}
	return &model.GatewayOrder{ID: "order_1", Amount: intent.Amount.Shift(2).IntPart(), Currency: "INR", Receipt: "rcpt_1"}, "rzp_key", nil
}

func (s StoreFacadeStub) VerifyPayment(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
	if s.VerifyPaymentFn != nil {
		return s.VerifyPaymentFn(ctx, p, req)
	}
	return &model.PaymentResult{PaymentID: req.Proof.PaymentID, RecordID: 1, Type: model.PaymentType(req.Type), Created: true}, nil
}

func (s StoreFacadeStub) Orders(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, p, filter)
	}
	return nil, nil
}

func (s StoreFacadeStub) Order(ctx context.Context, p model.Principal, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, p, id)
	}
	return &model.Order{ID: id, UserID: subject(p), Status: model.OrderStatusPaid, Currency: "INR"}, nil
}

func (s StoreFacadeStub) UpdateOrderStatus(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error) {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, p, id, req)
	}
	return &model.Order{ID: id, Status: model.OrderStatus(req.Status)}, nil
}

func (s StoreFacadeStub) BulkUpdateOrderStatus(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error) {
	if s.BulkUpdateOrderStatusFn != nil {
		return s.BulkUpdateOrderStatusFn(ctx, p, ids, req)
	}
	result := &model.BulkStatusResult{}
	for _, id := range ids {
		result.Updated = append(result.Updated, model.Order{ID: id, Status: model.OrderStatus(req.Status)})
	}
	return result, nil
}

func (s StoreFacadeStub) DeleteOrder(ctx context.Context, p model.Principal, id int64) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, p, id)
	}
	return nil
}

func (s StoreFacadeStub) Tracking(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error) {
	if s.TrackingFn != nil {
		return s.TrackingFn(ctx, p, orderID)
	}
	return nil, nil
}

func (s StoreFacadeStub) AppendTracking(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	if s.AppendTrackingFn != nil {
		return s.AppendTrackingFn(ctx, p, entry)
	}
	entry.ID = 1
	return &entry, nil
}

func (s StoreFacadeStub) EditTracking(ctx context.Context, p model.Principal, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error) {
	if s.EditTrackingFn != nil {
		return s.EditTrackingFn(ctx, p, id, update)
	}
	entry := model.TrackingEntry{ID: id}
	if update.Status != nil {
		entry.Status = *update.Status
	}
	return &entry, nil
}

func (s StoreFacadeStub) MyBookings(ctx context.Context, p model.Principal, page model.Page) ([]model.ServiceBooking, error) {
	if s.MyBookingsFn != nil {
		return s.MyBookingsFn(ctx, p, page)
	}
	return nil, nil
}

func (s StoreFacadeStub) RescheduleBooking(ctx context.Context, p model.Principal, id int64, change model.Reschedule) (*model.ServiceBooking, error) {
	if s.RescheduleBookingFn != nil {
		return s.RescheduleBookingFn(ctx, p, id, change)
	}
	return &model.ServiceBooking{ID: id, ScheduledAt: change.ScheduledAt, Status: model.BookingStatusPaid}, nil
}

func (s StoreFacadeStub) CancelBooking(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error) {
	if s.CancelBookingFn != nil {
		return s.CancelBookingFn(ctx, p, id)
	}
	return &model.ServiceBooking{ID: id, Status: model.BookingStatusCancelled}, nil
}

func (s StoreFacadeStub) Bookings(ctx context.Context, status string, page model.Page) ([]model.ServiceBooking, error) {
	if s.BookingsFn != nil {
		return s.BookingsFn(ctx, status, page)
	}
	return nil, nil
}

func (s StoreFacadeStub) SetBookingStatus(ctx context.Context, id int64, status string) (*model.ServiceBooking, error) {
	if s.SetBookingStatusFn != nil {
		return s.SetBookingStatusFn(ctx, id, status)
	}
	return &model.ServiceBooking{ID: id, Status: model.BookingStatus(status)}, nil
}

func (s StoreFacadeStub) DeleteBooking(ctx context.Context, id int64) error {
	if s.DeleteBookingFn != nil {
		return s.DeleteBookingFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Enrollments(ctx context.Context, status string, page model.Page) ([]model.CourseEnrollment, error) {
	if s.EnrollmentsFn != nil {
		return s.EnrollmentsFn(ctx, status, page)
	}
	return nil, nil
}

func (s StoreFacadeStub) SetEnrollmentStatus(ctx context.Context, id int64, status string) (*model.CourseEnrollment, error) {
	if s.SetEnrollmentStatusFn != nil {
		return s.SetEnrollmentStatusFn(ctx, id, status)
	}
	return &model.CourseEnrollment{ID: id, Status: model.BookingStatus(status)}, nil
}

func (s StoreFacadeStub) SubmitMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	if s.SubmitMessageFn != nil {
		return s.SubmitMessageFn(ctx, msg)
	}
	msg.ID = 1
	return &msg, nil
}

func (s StoreFacadeStub) Messages(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
	if s.MessagesFn != nil {
		return s.MessagesFn(ctx, unreadOnly, page)
	}
	return nil, nil
}

func (s StoreFacadeStub) MarkMessageRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
	if s.MarkMessageReadFn != nil {
		return s.MarkMessageReadFn(ctx, id, read)
	}
	return &model.ContactMessage{ID: id, Read: read}, nil
}

func (s StoreFacadeStub) DeleteMessage(ctx context.Context, id int64) error {
	if s.DeleteMessageFn != nil {
		return s.DeleteMessageFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Users(ctx context.Context, search string, page model.Page) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, search, page)
	}
	return nil, nil
}

func (s StoreFacadeStub) User(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleUser}, nil
}

func (s StoreFacadeStub) SetUserRole(ctx context.Context, id int64, role string) (*model.User, error) {
	if s.SetUserRoleFn != nil {
		return s.SetUserRoleFn(ctx, id, role)
	}
	return &model.User{ID: id, Role: model.Role(role)}, nil
}

func (s StoreFacadeStub) DeleteUser(ctx context.Context, id int64) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, id)
	}
	return nil
}

func (s StoreFacadeStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{OrdersByStatus: map[model.OrderStatus]int64{}}, nil
}

func subject(p model.Principal) int64 {
	if p == nil {
		return 0
	}
	return p.SubjectID()
}

// OAuthProviderStub stands in for the Google login flow.
type OAuthProviderStub struct {
	BeginFn    func(w http.ResponseWriter, r *http.Request) error
	CompleteFn func(w http.ResponseWriter, r *http.Request) (model.OAuthIdentity, error)
}

func (s OAuthProviderStub) Begin(w http.ResponseWriter, r *http.Request) error {
	if s.BeginFn != nil {
		return s.BeginFn(w, r)
	}
	http.Redirect(w, r, "https://accounts.google.com/o/oauth2/auth", http.StatusTemporaryRedirect)
	return nil
}

func (s OAuthProviderStub) Complete(w http.ResponseWriter, r *http.Request) (model.OAuthIdentity, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(w, r)
	}
	return model.OAuthIdentity{Provider: "google", Email: "seeker@example.com", Name: "Seeker"}, nil
}
