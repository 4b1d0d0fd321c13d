package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	pkgAuth "github.com/polkiloo/mysticmart/internal/pkg/auth"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
	"github.com/polkiloo/mysticmart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/mysticmart/internal/test"
)

var _ StoreFacade = testhelpers.StoreFacadeStub{}

func init() {
	gin.SetMode(gin.TestMode)
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	route := path
	if i := strings.IndexByte(route, '?'); i >= 0 {
		route = route[:i]
	}
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func as(p model.Principal) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, p)
		c.Set(middleware.TokenContextKey, "session-token")
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, w.Code, w.Body.String())
	}
	resp := decode[dto.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domainErrors.ErrMissingFields, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS"},
		{fmt.Errorf("wrapped: %w", domainErrors.ErrInvalidQuantity), http.StatusBadRequest, "INVALID_QUANTITY"},
		{domainErrors.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{pkgAuth.ErrPasswordTooLong, http.StatusBadRequest, "INVALID_PASSWORD"},
		{domainErrors.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE"},
		{domainErrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domainErrors.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{domainErrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domainErrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{domainErrors.ErrPaymentNotConfigured, http.StatusInternalServerError, "PAYMENT_NOT_CONFIGURED"},
		{domainErrors.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY_ERROR"},
		{domainErrors.ErrOAuthNotConfigured, http.StatusServiceUnavailable, "OAUTH_NOT_CONFIGURED"},
		{errors.New("pq: connection refused at 10.0.0.3"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := performRequest(t, http.MethodGet, "/", func(c *gin.Context) { respondError(c, tt.err) }, nil, nil, nil)
			expectError(t, w, tt.status, tt.code)
			if tt.code == "INTERNAL_ERROR" && strings.Contains(w.Body.String(), "connection") {
				t.Fatalf("internal error leaked: %s", w.Body.String())
			}
		})
	}
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		path string
		body dto.ID
		want int64
		err  error
	}{
		{name: "body wins", path: "/?id=9", body: dto.NewID("4"), want: 4},
		{name: "query fallback", path: "/?id=9", want: 9},
		{name: "missing", path: "/", err: domainErrors.ErrMissingFields},
		{name: "non numeric body", path: "/", body: dto.NewID("abc"), err: domainErrors.ErrInvalidID},
		{name: "non numeric query", path: "/?id=x1", err: domainErrors.ErrInvalidID},
		{name: "negative", path: "/?id=-3", err: domainErrors.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.path, nil)
			got, err := recordID(c, "id", tt.body)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if got != tt.want {
				t.Fatalf("expected id %d, got %d", tt.want, got)
			}
		})
	}
}

func TestIDAcceptsNumberAndString(t *testing.T) {
	var req dto.IDRequest
	if err := json.Unmarshal([]byte(`{"id": 12}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if id, ok := req.ID.Int64(); !ok || id != 12 {
		t.Fatalf("expected 12, got %d %v", id, ok)
	}
	if err := json.Unmarshal([]byte(`{"id": "13"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if id, ok := req.ID.Int64(); !ok || id != 13 {
		t.Fatalf("expected 13, got %d %v", id, ok)
	}
}

func newAuthHandler(facade testhelpers.StoreFacadeStub, provider testhelpers.OAuthProviderStub, redirect string) *AuthHandler {
	return NewAuthHandler(facade, provider, SessionSettings{TTL: time.Hour, RedirectURL: redirect})
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomASCIIString(6, 12) + "@example.com"
	password := testhelpers.RandomASCIIString(12, 24)
	facade := testhelpers.StoreFacadeStub{RegisterFn: func(ctx context.Context, gotEmail, gotPassword, name string) (*model.User, string, error) {
		if gotEmail != email || gotPassword != password || name != "Seeker" {
			t.Fatalf("unexpected registration passed to facade: %q %q %q", gotEmail, gotPassword, name)
		}
		return &model.User{ID: 3, Email: gotEmail, Name: name, Role: model.RoleUser}, "fresh-token", nil
	}}
	body := mustJSON(t, dto.RegisterRequest{Email: email, Password: password, Name: "Seeker"})

	w := performRequest(t, http.MethodPost, "/register", newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "").Register, nil, body, jsonHeaders)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if got := w.Header().Get("Authorization"); got != "Bearer fresh-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	resp := decode[dto.SessionResponse](t, w)
	if resp.Token != "fresh-token" || resp.User == nil || resp.User.ID != 3 {
		t.Fatalf("unexpected session response %+v", resp)
	}

	result := w.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			found = cookie.Value == "fresh-token" && cookie.HttpOnly
		}
	}
	if !found {
		t.Fatal("expected http-only session cookie")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
		code   string
	}{
		{name: "malformed json", body: []byte("{"), status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		{name: "empty body", body: nil, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		{name: "duplicate email", err: domainErrors.ErrAlreadyExists, body: []byte(`{"email":"a@b.c","password":"secret12"}`), status: http.StatusConflict, code: "ALREADY_EXISTS"},
		{name: "bad email", err: domainErrors.ErrInvalidEmail, body: []byte(`{"email":"nope","password":"secret12"}`), status: http.StatusBadRequest, code: "INVALID_EMAIL"},
		{name: "storage failure", err: errors.New("db down"), body: []byte(`{"email":"a@b.c","password":"secret12"}`), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.StoreFacadeStub{RegisterFn: func(context.Context, string, string, string) (*model.User, string, error) {
				return nil, "", tt.err
			}}
			w := performRequest(t, http.MethodPost, "/register", newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "").Register, nil, tt.body, jsonHeaders)
			expectError(t, w, tt.status, tt.code)
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	facade := testhelpers.StoreFacadeStub{LoginFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
		if password != "right" {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return &model.User{ID: 1, Email: email}, "token", nil
	}}
	h := newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "")

	w := performRequest(t, http.MethodPost, "/login", h.Login, nil, []byte(`{"email":"a@b.c","password":"right"}`), jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPost, "/login", h.Login, nil, []byte(`{"email":"a@b.c","password":"wrong"}`), jsonHeaders)
	expectError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestAuthHandlerLogoutAndMe(t *testing.T) {
	var revoked string
	facade := testhelpers.StoreFacadeStub{LogoutFn: func(ctx context.Context, token string) error {
		revoked = token
		return nil
	}}
	h := newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "")

	w := performRequest(t, http.MethodPost, "/logout", h.Logout, as(testhelpers.Customer(5)), nil, nil)
	if w.Code != http.StatusOK || revoked != "session-token" {
		t.Fatalf("expected token revoked, got status %d token %q", w.Code, revoked)
	}
	if cookie := w.Header().Get("Set-Cookie"); !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected cookie cleared, got %q", cookie)
	}

	w = performRequest(t, http.MethodGet, "/me", h.Me, as(testhelpers.Customer(5)), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if me := decode[dto.UserResponse](t, w); me.ID != 5 || me.Role != "user" {
		t.Fatalf("unexpected me response %+v", me)
	}

	w = performRequest(t, http.MethodGet, "/me", h.Me, as(testhelpers.Operator(1)), nil, nil)
	expectError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuthHandlerAccountRecovery(t *testing.T) {
	var verified, resetFor string
	facade := testhelpers.StoreFacadeStub{
		VerifyEmailFn: func(ctx context.Context, token string) error {
			if token == "stale" {
				return domainErrors.ErrInvalidToken
			}
			verified = token
			return nil
		},
		ResetPasswordFn: func(ctx context.Context, token, password string) error {
			resetFor = token
			return nil
		},
	}
	h := newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "")

	w := performRequest(t, http.MethodGet, "/verify-email?token=abc", h.VerifyEmail, nil, nil, nil)
	if w.Code != http.StatusOK || verified != "abc" {
		t.Fatalf("expected verification, got %d %q", w.Code, verified)
	}
	w = performRequest(t, http.MethodGet, "/verify-email", h.VerifyEmail, nil, nil, nil)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")
	w = performRequest(t, http.MethodGet, "/verify-email?token=stale", h.VerifyEmail, nil, nil, nil)
	expectError(t, w, http.StatusBadRequest, "INVALID_TOKEN")

	w = performRequest(t, http.MethodPost, "/forgot-password", h.ForgotPassword, nil, []byte(`{"email":"ghost@example.com"}`), jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected forgot-password to succeed, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPost, "/reset-password", h.ResetPassword, nil, []byte(`{"token":"t1","password":"newsecret"}`), jsonHeaders)
	if w.Code != http.StatusOK || resetFor != "t1" {
		t.Fatalf("expected reset, got %d %q", w.Code, resetFor)
	}
}

func TestAuthHandlerGoogleCallback(t *testing.T) {
	var identity model.OAuthIdentity
	facade := testhelpers.StoreFacadeStub{OAuthLoginFn: func(ctx context.Context, id model.OAuthIdentity) (*model.User, string, error) {
		identity = id
		return &model.User{ID: 8, Email: id.Email}, "oauth-token", nil
	}}

	h := newAuthHandler(facade, testhelpers.OAuthProviderStub{}, "https://mystic.example.com/account")
	w := performRequest(t, http.MethodGet, "/callback", h.GoogleCallback, nil, nil, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://mystic.example.com/account" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if identity.Email != "seeker@example.com" {
		t.Fatalf("identity not forwarded: %+v", identity)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "oauth-token") {
		t.Fatal("expected session cookie on redirect")
	}

	failing := testhelpers.OAuthProviderStub{CompleteFn: func(http.ResponseWriter, *http.Request) (model.OAuthIdentity, error) {
		return model.OAuthIdentity{}, domainErrors.ErrOAuthNotConfigured
	}}
	w = performRequest(t, http.MethodGet, "/callback", newAuthHandler(facade, failing, "").GoogleCallback, nil, nil, nil)
	expectError(t, w, http.StatusServiceUnavailable, "OAUTH_NOT_CONFIGURED")
}

func TestAdminAuthHandler(t *testing.T) {
	h := NewAdminAuthHandler(testhelpers.StoreFacadeStub{})

	w := performRequest(t, http.MethodPost, "/login", h.Login, nil, []byte(`{"email":"ops@example.com","password":"secret"}`), jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decode[dto.SessionResponse](t, w)
	if resp.Token != "admin-token" || resp.Admin == nil || resp.User != nil {
		t.Fatalf("unexpected admin session %+v", resp)
	}
	if w.Header().Get("Set-Cookie") != "" {
		t.Fatal("admin sessions must not set cookies")
	}

	w = performRequest(t, http.MethodGet, "/me", h.Me, as(testhelpers.Operator(2)), nil, nil)
	if me := decode[dto.AdminResponse](t, w); w.Code != http.StatusOK || me.ID != 2 {
		t.Fatalf("unexpected me %d %+v", w.Code, me)
	}
	w = performRequest(t, http.MethodGet, "/me", h.Me, as(testhelpers.StaffCustomer(2)), nil, nil)
	expectError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestCatalogHandlerProducts(t *testing.T) {
	var filter model.ProductFilter
	facade := testhelpers.StoreFacadeStub{ProductsFn: func(ctx context.Context, f model.ProductFilter) ([]model.Product, error) {
		filter = f
		return []model.Product{{ID: 1, Name: "Rose quartz", Price: decimal.RequireFromString("249.50"), Stock: 4}}, nil
	}}
	h := NewCatalogHandler(facade)

	w := performRequest(t, http.MethodGet, "/products?category=crystals&search=rose&inStock=true&limit=5&offset=10", h.Products, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if filter.Category != "crystals" || filter.Search != "rose" || !filter.InStock || filter.Page.Limit != 5 || filter.Page.Offset != 10 {
		t.Fatalf("unexpected filter %+v", filter)
	}
	products := decode[[]dto.ProductResponse](t, w)
	if len(products) != 1 || products[0].Price != 249.5 {
		t.Fatalf("unexpected products %+v", products)
	}

	w = performRequest(t, http.MethodGet, "/products?id=7", h.Products, nil, nil, nil)
	if p := decode[dto.ProductResponse](t, w); w.Code != http.StatusOK || p.ID != 7 {
		t.Fatalf("expected product 7, got %d %+v", w.Code, p)
	}

	w = performRequest(t, http.MethodGet, "/products?id=seven", h.Products, nil, nil, nil)
	expectError(t, w, http.StatusBadRequest, "INVALID_ID")
}

func TestCatalogHandlerEmptyListEncodesArray(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(testhelpers.StoreFacadeStub{}).Products, nil, nil, nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestCatalogHandlerProductWrites(t *testing.T) {
	var created model.Product
	var patchedID, deletedID int64
	facade := testhelpers.StoreFacadeStub{
		CreateProductFn: func(ctx context.Context, p model.Product) (*model.Product, error) {
			created = p
			p.ID = 11
			return &p, nil
		},
		UpdateProductFn: func(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
			patchedID = id
			if patch.Name != nil || patch.Stock == nil || *patch.Stock != 2 {
				t.Fatalf("unexpected patch %+v", patch)
			}
			return &model.Product{ID: id, Stock: *patch.Stock}, nil
		},
		DeleteProductFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	h := NewCatalogHandler(facade)

	w := performRequest(t, http.MethodPost, "/products", h.CreateProduct, nil, []byte(`{"name":"Tarot deck","price":"899.00","stock":5}`), jsonHeaders)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if created.Name != "Tarot deck" || !created.Price.Equal(decimal.NewFromInt(899)) || created.Stock != 5 {
		t.Fatalf("unexpected product %+v", created)
	}

	w = performRequest(t, http.MethodPost, "/products", h.CreateProduct, nil, []byte(`{"name":"No price"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodPut, "/products", h.UpdateProduct, nil, []byte(`{"id":"11","stock":2}`), jsonHeaders)
	if w.Code != http.StatusOK || patchedID != 11 {
		t.Fatalf("expected update of 11, got %d %d", w.Code, patchedID)
	}

	w = performRequest(t, http.MethodDelete, "/products?id=11", h.DeleteProduct, nil, nil, nil)
	if w.Code != http.StatusOK || deletedID != 11 {
		t.Fatalf("expected delete of 11, got %d %d", w.Code, deletedID)
	}

	w = performRequest(t, http.MethodDelete, "/products", h.DeleteProduct, nil, []byte(`{"id":"abc"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INVALID_ID")
}

func TestCatalogHandlerHidesInactiveOnStorefront(t *testing.T) {
	var activeOnly []bool
	facade := testhelpers.StoreFacadeStub{
		ServiceFn: func(ctx context.Context, id int64) (*model.Service, error) {
			return &model.Service{ID: id, Name: "Retired reading", Active: false}, nil
		},
		ServicesFn: func(ctx context.Context, active bool) ([]model.Service, error) {
			activeOnly = append(activeOnly, active)
			return nil, nil
		},
	}

	w := performRequest(t, http.MethodGet, "/services?id=3", NewCatalogHandler(facade).Services, nil, nil, nil)
	expectError(t, w, http.StatusNotFound, "SERVICE_NOT_FOUND")

	w = performRequest(t, http.MethodGet, "/services?id=3", NewAdminCatalogHandler(facade).Services, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected admin to see inactive service, got %d", w.Code)
	}

	performRequest(t, http.MethodGet, "/services", NewCatalogHandler(facade).Services, nil, nil, nil)
	performRequest(t, http.MethodGet, "/services", NewAdminCatalogHandler(facade).Services, nil, nil, nil)
	if len(activeOnly) != 2 || !activeOnly[0] || activeOnly[1] {
		t.Fatalf("unexpected activeOnly flags %v", activeOnly)
	}
}

func TestCatalogHandlerCourses(t *testing.T) {
	var created model.Course
	facade := testhelpers.StoreFacadeStub{CreateCourseFn: func(ctx context.Context, c model.Course) (*model.Course, error) {
		created = c
		return &c, nil
	}}
	h := NewAdminCatalogHandler(facade)

	w := performRequest(t, http.MethodPost, "/courses", h.CreateCourse, nil, []byte(`{"title":"Reiki","price":1500}`), jsonHeaders)
	if w.Code != http.StatusCreated || !created.Active {
		t.Fatalf("expected active course created, got %d %+v", w.Code, created)
	}

	w = performRequest(t, http.MethodGet, "/courses?id=2", h.Courses, nil, nil, nil)
	if c := decode[dto.CourseResponse](t, w); c.ID != 2 {
		t.Fatalf("unexpected course %+v", c)
	}
}

func TestCartHandler(t *testing.T) {
	var added struct {
		productID int64
		quantity  int
	}
	cleared := false
	facade := testhelpers.StoreFacadeStub{
		AddToCartFn: func(ctx context.Context, p model.Principal, productID int64, quantity int) (*model.CartItem, error) {
			added.productID, added.quantity = productID, quantity
			if quantity > 3 {
				return nil, domainErrors.ErrInsufficientStock
			}
			return &model.CartItem{ID: 1, UserID: p.SubjectID(), ProductID: productID, Quantity: quantity}, nil
		},
		ClearCartFn: func(ctx context.Context, p model.Principal) error {
			cleared = true
			return nil
		},
	}
	h := NewCartHandler(facade)
	customer := as(testhelpers.Customer(5))

	w := performRequest(t, http.MethodPost, "/cart", h.Add, customer, []byte(`{"productId":7}`), jsonHeaders)
	if w.Code != http.StatusCreated || added.productID != 7 || added.quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d %+v", w.Code, added)
	}

	w = performRequest(t, http.MethodPost, "/cart", h.Add, customer, []byte(`{"productId":7,"quantity":9}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INSUFFICIENT_STOCK")

	w = performRequest(t, http.MethodPost, "/cart", h.Add, customer, []byte(`{"quantity":1}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodPut, "/cart", h.Update, customer, []byte(`{"id":1}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodPut, "/cart", h.Update, customer, []byte(`{"id":1,"quantity":2}`), jsonHeaders)
	if item := decode[dto.CartItemResponse](t, w); w.Code != http.StatusOK || item.Quantity != 2 {
		t.Fatalf("unexpected update %d %+v", w.Code, item)
	}

	w = performRequest(t, http.MethodDelete, "/cart", h.Delete, customer, []byte(`{"clearAll":true}`), jsonHeaders)
	if w.Code != http.StatusOK || !cleared {
		t.Fatalf("expected cart cleared, got %d", w.Code)
	}

	w = performRequest(t, http.MethodDelete, "/cart", h.Delete, customer, nil, nil)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")
}

func TestCheckoutHandlerCreateOrder(t *testing.T) {
	var intent model.PaymentIntent
	facade := testhelpers.StoreFacadeStub{CreatePaymentOrderFn: func(ctx context.Context, in model.PaymentIntent) (*model.GatewayOrder, string, error) {
		intent = in
		return &model.GatewayOrder{ID: "order_X", Amount: 171900, Currency: "INR", Receipt: "r1"}, "rzp_live", nil
	}}

	w := performRequest(t, http.MethodPost, "/create-order", NewCheckoutHandler(facade).CreateOrder, nil, []byte(`{"amount":1719,"type":"order"}`), jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !intent.Amount.Equal(decimal.NewFromInt(1719)) || intent.Type != "order" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	resp := decode[dto.CreateOrderResponse](t, w)
	if resp.OrderID != "order_X" || resp.Amount != 171900 || resp.KeyID != "rzp_live" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCheckoutHandlerVerifyPayment(t *testing.T) {
	var got model.PaymentVerification
	var principal model.Principal
	facade := testhelpers.StoreFacadeStub{VerifyPaymentFn: func(ctx context.Context, p model.Principal, req model.PaymentVerification) (*model.PaymentResult, error) {
		got, principal = req, p
		if req.Proof.Signature == "forged" {
			return nil, domainErrors.ErrInvalidSignature
		}
		return &model.PaymentResult{PaymentID: req.Proof.PaymentID, RecordID: 42, Type: model.PaymentType(req.Type)}, nil
	}}
	h := NewCheckoutHandler(facade)

	body := []byte(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig",
		"type":"service","data":{"serviceId":3,"name":"Guest","email":"g@example.com","preferredDate":"2026-11-01T10:00:00Z"}}`)
	w := performRequest(t, http.MethodPost, "/verify-payment", h.VerifyPayment, nil, body, jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if principal != nil {
		t.Fatalf("expected guest verification, got %v", principal)
	}
	if got.ItemID != 3 || got.Contact.Email != "g@example.com" || got.ScheduledAt == nil || got.Proof.GatewayOrderID != "order_1" {
		t.Fatalf("unexpected verification %+v", got)
	}
	resp := decode[dto.VerifyPaymentResponse](t, w)
	if !resp.Success || resp.OrderID != 42 || resp.PaymentID != "pay_1" || !resp.Duplicate {
		t.Fatalf("unexpected response %+v", resp)
	}

	body = []byte(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_2","razorpay_signature":"sig","type":"course",
		"data":{"items":[{"productId":7,"quantity":2}],"shippingAddress":{"city":"Pune"}}}`)
	w = performRequest(t, http.MethodPost, "/orders", h.PlaceOrder, as(testhelpers.Customer(5)), body, jsonHeaders)
	if w.Code != http.StatusOK || got.Type != "order" || principal == nil {
		t.Fatalf("expected order-typed verification, got %d %q", w.Code, got.Type)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 7 || got.Items[0].Quantity != 2 || got.Address.City != "Pune" {
		t.Fatalf("unexpected order payload %+v", got)
	}

	w = performRequest(t, http.MethodPost, "/sessions", h.BookSession, nil, []byte(`{"type":"order","data":{"serviceId":4}}`), jsonHeaders)
	if got.Type != "service" || got.ItemID != 4 {
		t.Fatalf("expected service-typed verification, got %q %d", got.Type, got.ItemID)
	}

	w = performRequest(t, http.MethodPost, "/verify-payment", h.VerifyPayment, nil, []byte(`{"razorpay_signature":"forged","type":"order"}`), jsonHeaders)
	expectError(t, w, http.StatusUnauthorized, "INVALID_SIGNATURE")
}

func TestOrderHandlerList(t *testing.T) {
	var filter model.OrderFilter
	facade := testhelpers.StoreFacadeStub{OrdersFn: func(ctx context.Context, p model.Principal, f model.OrderFilter) ([]model.Order, error) {
		filter = f
		return []model.Order{{ID: 1, UserID: p.SubjectID(), Status: model.OrderStatusShipped, TotalAmount: decimal.RequireFromString("1719.00"),
			Items: []model.OrderItem{{ProductID: 7, Quantity: 2, Price: decimal.NewFromInt(500), Name: "Amethyst"}}}}, nil
	}}
	h := NewOrderHandler(facade)

	w := performRequest(t, http.MethodGet, "/orders?status=shipped&userId=5", h.List, as(testhelpers.Operator(1)), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if filter.Status != model.OrderStatusShipped || filter.UserID != 5 {
		t.Fatalf("unexpected filter %+v", filter)
	}
	orders := decode[[]dto.OrderResponse](t, w)
	if len(orders) != 1 || orders[0].TotalAmount != 1719 || orders[0].Items[0].Name != "Amethyst" {
		t.Fatalf("unexpected orders %+v", orders)
	}

	w = performRequest(t, http.MethodGet, "/orders?status=lost", h.List, as(testhelpers.Operator(1)), nil, nil)
	expectError(t, w, http.StatusBadRequest, "INVALID_STATUS")

	w = performRequest(t, http.MethodGet, "/orders?id=9", h.List, as(testhelpers.Customer(5)), nil, nil)
	if o := decode[dto.OrderResponse](t, w); o.ID != 9 || o.UserID != 5 {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var singleID int64
	var change model.StatusRequest
	facade := testhelpers.StoreFacadeStub{
		UpdateOrderStatusFn: func(ctx context.Context, p model.Principal, id int64, req model.StatusRequest) (*model.Order, error) {
			singleID, change = id, req
			return &model.Order{ID: id, Status: model.OrderStatus(strings.ToUpper(req.Status))}, nil
		},
		BulkUpdateOrderStatusFn: func(ctx context.Context, p model.Principal, ids []int64, req model.StatusRequest) (*model.BulkStatusResult, error) {
			return &model.BulkStatusResult{Updated: []model.Order{{ID: ids[0]}}, Missing: ids[1:]}, nil
		},
	}
	h := NewOrderHandler(facade)
	admin := as(testhelpers.Operator(1))

	w := performRequest(t, http.MethodPut, "/orders", h.UpdateStatus, admin, []byte(`{"orderId":"4","status":"shipped","courierName":"Delhivery"}`), jsonHeaders)
	if w.Code != http.StatusOK || singleID != 4 || change.CourierName == nil || *change.CourierName != "Delhivery" {
		t.Fatalf("unexpected single update %d %d %+v", w.Code, singleID, change)
	}

	w = performRequest(t, http.MethodPut, "/orders", h.UpdateStatus, admin, []byte(`{"orderIds":[4,99],"status":"DELIVERED"}`), jsonHeaders)
	resp := decode[dto.BulkStatusResponse](t, w)
	if w.Code != http.StatusOK || len(resp.Updated) != 1 || len(resp.Missing) != 1 || resp.Missing[0] != 99 {
		t.Fatalf("unexpected bulk response %d %+v", w.Code, resp)
	}

	w = performRequest(t, http.MethodPut, "/orders", h.UpdateStatus, admin, []byte(`{"status":"DELIVERED"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")
}

func TestOrderHandlerDeleteAndTracking(t *testing.T) {
	var appended model.TrackingEntry
	facade := testhelpers.StoreFacadeStub{
		DeleteOrderFn: func(ctx context.Context, p model.Principal, id int64) error {
			if id != 4 {
				return domainErrors.ErrOrderNotFound
			}
			return nil
		},
		TrackingFn: func(ctx context.Context, p model.Principal, orderID int64) ([]model.TrackingEntry, error) {
			return []model.TrackingEntry{{ID: 2, OrderID: orderID, Status: "Processing", Location: "Warehouse"}}, nil
		},
		AppendTrackingFn: func(ctx context.Context, p model.Principal, entry model.TrackingEntry) (*model.TrackingEntry, error) {
			appended = entry
			entry.ID = 3
			return &entry, nil
		},
	}
	h := NewOrderHandler(facade)
	customer := as(testhelpers.Customer(5))

	w := performRequest(t, http.MethodDelete, "/orders?id=4", h.Delete, customer, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = performRequest(t, http.MethodDelete, "/orders", h.Delete, customer, []byte(`{"id":5}`), jsonHeaders)
	expectError(t, w, http.StatusNotFound, "ORDER_NOT_FOUND")

	w = performRequest(t, http.MethodGet, "/tracking?orderId=4", h.Tracking, customer, nil, nil)
	if entries := decode[[]dto.TrackingResponse](t, w); len(entries) != 1 || entries[0].Location != "Warehouse" {
		t.Fatalf("unexpected tracking %+v", entries)
	}
	w = performRequest(t, http.MethodGet, "/tracking", h.Tracking, customer, nil, nil)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodPost, "/tracking", h.AppendTracking, customer, []byte(`{"orderId":4,"status":"In transit","description":"Left hub","location":"Mumbai"}`), jsonHeaders)
	if w.Code != http.StatusCreated || appended.OrderID != 4 || appended.Location != "Mumbai" {
		t.Fatalf("unexpected append %d %+v", w.Code, appended)
	}
	w = performRequest(t, http.MethodPost, "/tracking", h.AppendTracking, customer, []byte(`{"orderId":4}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodPut, "/tracking", h.EditTracking, customer, []byte(`{"id":3,"status":"Delivered"}`), jsonHeaders)
	if e := decode[dto.TrackingResponse](t, w); w.Code != http.StatusOK || e.Status != "Delivered" {
		t.Fatalf("unexpected edit %d %+v", w.Code, e)
	}
}

func TestBookingHandler(t *testing.T) {
	var change model.Reschedule
	facade := testhelpers.StoreFacadeStub{
		RescheduleBookingFn: func(ctx context.Context, p model.Principal, id int64, c model.Reschedule) (*model.ServiceBooking, error) {
			change = c
			return &model.ServiceBooking{ID: id, ScheduledAt: c.ScheduledAt, Status: model.BookingStatusPaid}, nil
		},
		SetBookingStatusFn: func(ctx context.Context, id int64, status string) (*model.ServiceBooking, error) {
			if _, ok := model.ParseBookingStatus(status); !ok {
				return nil, domainErrors.ErrInvalidStatus
			}
			return &model.ServiceBooking{ID: id, Status: model.BookingStatus(status)}, nil
		},
	}
	h := NewBookingHandler(facade)
	customer := as(testhelpers.Customer(5))

	w := performRequest(t, http.MethodPut, "/sessions", h.Reschedule, customer, []byte(`{"id":2,"preferredDate":"2026-12-01T09:30:00Z"}`), jsonHeaders)
	if w.Code != http.StatusOK || change.ScheduledAt == nil || change.ScheduledAt.Day() != 1 {
		t.Fatalf("unexpected reschedule %d %+v", w.Code, change)
	}
	w = performRequest(t, http.MethodPut, "/sessions", h.Reschedule, customer, []byte(`{"id":2}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "MISSING_REQUIRED_FIELDS")

	w = performRequest(t, http.MethodDelete, "/sessions?id=2", h.Cancel, customer, nil, nil)
	if b := decode[dto.BookingResponse](t, w); w.Code != http.StatusOK || b.Status != "CANCELLED" {
		t.Fatalf("unexpected cancel %d %+v", w.Code, b)
	}

	admin := as(testhelpers.Operator(1))
	w = performRequest(t, http.MethodPut, "/bookings", h.SetBookingStatus, admin, []byte(`{"id":2,"status":"COMPLETED"}`), jsonHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = performRequest(t, http.MethodPut, "/bookings", h.SetBookingStatus, admin, []byte(`{"id":2,"status":"LOST"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INVALID_STATUS")

	w = performRequest(t, http.MethodPut, "/enrollments", h.SetEnrollmentStatus, admin, []byte(`{"id":"x","status":"PAID"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INVALID_ID")
}

func TestMessageHandler(t *testing.T) {
	var readFlag *bool
	facade := testhelpers.StoreFacadeStub{
		SubmitMessageFn: func(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
			if msg.Email == "broken" {
				return nil, domainErrors.ErrInvalidEmail
			}
			msg.ID = 6
			return &msg, nil
		},
		MarkMessageReadFn: func(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
			readFlag = &read
			return &model.ContactMessage{ID: id, Read: read}, nil
		},
		MessagesFn: func(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
			if !unreadOnly {
				t.Fatal("expected unread filter")
			}
			return nil, nil
		},
	}
	h := NewMessageHandler(facade)

	w := performRequest(t, http.MethodPost, "/contact", h.Submit, nil, []byte(`{"name":"A","email":"a@example.com","message":"Hello"}`), jsonHeaders)
	if m := decode[dto.ContactMessageResponse](t, w); w.Code != http.StatusCreated || m.ID != 6 {
		t.Fatalf("unexpected submit %d %+v", w.Code, m)
	}
	w = performRequest(t, http.MethodPost, "/contact", h.Submit, nil, []byte(`{"name":"A","email":"broken","message":"Hello"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INVALID_EMAIL")

	w = performRequest(t, http.MethodPut, "/messages?id=6", h.MarkRead, nil, nil, nil)
	if w.Code != http.StatusOK || readFlag == nil || !*readFlag {
		t.Fatalf("expected default read=true, got %d %v", w.Code, readFlag)
	}
	performRequest(t, http.MethodPut, "/messages", h.MarkRead, nil, []byte(`{"id":6,"read":false}`), jsonHeaders)
	if *readFlag {
		t.Fatal("expected read=false to be forwarded")
	}

	w = performRequest(t, http.MethodGet, "/messages?unread=true", h.List, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminHandler(t *testing.T) {
	facade := testhelpers.StoreFacadeStub{
		SetUserRoleFn: func(ctx context.Context, id int64, role string) (*model.User, error) {
			r, ok := model.ParseRole(role)
			if !ok {
				return nil, domainErrors.ErrInvalidRole
			}
			return &model.User{ID: id, Role: r}, nil
		},
		StatsFn: func(ctx context.Context) (*model.Stats, error) {
			return &model.Stats{
				Users:          3,
				Revenue:        decimal.RequireFromString("2218.50"),
				OrdersByStatus: map[model.OrderStatus]int64{model.OrderStatusPaid: 2},
			}, nil
		},
		DeleteUserFn: func(ctx context.Context, id int64) error {
			return domainErrors.ErrUserNotFound
		},
	}
	h := NewAdminHandler(facade)

	w := performRequest(t, http.MethodPut, "/users", h.SetRole, nil, []byte(`{"id":4,"role":"admin"}`), jsonHeaders)
	if u := decode[dto.UserResponse](t, w); w.Code != http.StatusOK || u.Role != "admin" {
		t.Fatalf("unexpected role update %d %+v", w.Code, u)
	}
	w = performRequest(t, http.MethodPut, "/users", h.SetRole, nil, []byte(`{"id":4,"role":"wizard"}`), jsonHeaders)
	expectError(t, w, http.StatusBadRequest, "INVALID_ROLE")

	w = performRequest(t, http.MethodDelete, "/users?id=4", h.DeleteUser, nil, nil, nil)
	expectError(t, w, http.StatusNotFound, "USER_NOT_FOUND")

	w = performRequest(t, http.MethodGet, "/users?id=4", h.Users, nil, nil, nil)
	if u := decode[dto.UserResponse](t, w); u.ID != 4 {
		t.Fatalf("unexpected user %+v", u)
	}

	w = performRequest(t, http.MethodGet, "/stats", h.Stats, nil, nil, nil)
	stats := decode[dto.StatsResponse](t, w)
	if stats.Users != 3 || stats.Revenue != 2218.5 || stats.OrdersByStatus["PAID"] != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/health", Health, nil, nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}
