package shiprocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/polkiloo/mysticmart/internal/adapter/httpx"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// tokenTTL is kept below the provider's ten day token validity.
const tokenTTL = 24 * time.Hour

var errUnauthorized = errors.New("shiprocket token rejected")

// Provider registers paid orders for delivery in two steps so a failed AWB
// assignment can be retried against the same shipment.
type Provider interface {
	CreateShipment(ctx context.Context, order *model.Order) (string, error)
	AssignAWB(ctx context.Context, shipmentID string) (*model.Shipment, error)
}

// Credentials identify the API user and the pickup warehouse.
type Credentials struct {
	Email          string
	Password       string
	PickupLocation string
}

// HTTPClient implements Provider over the Shiprocket REST API.
type HTTPClient struct {
	baseURL    *url.URL
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewHTTPClient creates a Shiprocket client.
func NewHTTPClient(baseURL string, creds Credentials, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := httpx.ParseBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("shiprocket: %w", err)
	}
	return &HTTPClient{
		baseURL:    parsed,
		creds:      creds,
		httpClient: httpx.NewClient(),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (c *HTTPClient) configured() bool {
	return c.creds.Email != "" && c.creds.Password != ""
}

// CreateShipment creates an ad-hoc order and returns the provider shipment id.
func (c *HTTPClient) CreateShipment(ctx context.Context, order *model.Order) (string, error) {
	var created createOrderResponse
	in := newCreateOrderRequest(order, c.creds.PickupLocation, c.now())
	if err := c.authorized(ctx, "/v1/external/orders/create/adhoc", in, &created); err != nil {
		return "", err
	}
	if created.ShipmentID == 0 {
		return "", fmt.Errorf("%w: no shipment id for order %d", domainErrors.ErrShippingProvider, order.ID)
	}
	return strconv.FormatInt(created.ShipmentID, 10), nil
}

// AssignAWB requests an airway bill and courier for a created shipment.
func (c *HTTPClient) AssignAWB(ctx context.Context, shipmentID string) (*model.Shipment, error) {
	id, err := strconv.ParseInt(shipmentID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: shipment id %q", domainErrors.ErrPermanent, shipmentID)
	}

	var assigned assignAWBResponse
	if err := c.authorized(ctx, "/v1/external/courier/assign/awb", assignAWBRequest{ShipmentID: id}, &assigned); err != nil {
		return nil, err
	}
	data := assigned.Response.Data
	if data.AWBCode == "" {
		return nil, fmt.Errorf("%w: no awb for shipment %s", domainErrors.ErrShippingProvider, shipmentID)
	}
	return &model.Shipment{ShipmentID: shipmentID, AWBCode: data.AWBCode, CourierName: data.CourierName}, nil
}

// authorized posts with the cached token and refreshes it once when rejected.
func (c *HTTPClient) authorized(ctx context.Context, endpoint string, in, out any) error {
	if !c.configured() {
		return domainErrors.ErrShippingNotConfigured
	}
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}
	err = c.call(ctx, token, endpoint, in, out)
	if !errors.Is(err, errUnauthorized) {
		return err
	}

	c.invalidateToken()
	if token, err = c.authToken(ctx); err != nil {
		return err
	}
	if err = c.call(ctx, token, endpoint, in, out); errors.Is(err, errUnauthorized) {
		return fmt.Errorf("%w: token rejected after refresh", domainErrors.ErrShippingProvider)
	}
	return err
}

func (c *HTTPClient) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	var out loginResponse
	in := loginRequest{Email: c.creds.Email, Password: c.creds.Password}
	if err := c.call(ctx, "", "/v1/external/auth/login", in, &out); err != nil {
		return "", fmt.Errorf("shiprocket login: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: empty login token", domainErrors.ErrShippingProvider)
	}
	c.token = out.Token
	c.expiresAt = c.now().Add(tokenTTL)
	return c.token, nil
}

func (c *HTTPClient) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *HTTPClient) call(ctx context.Context, token, endpoint string, in, out any) error {
	req, err := httpx.NewJSONRequest(ctx, http.MethodPost, httpx.Endpoint(c.baseURL, endpoint), in)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrShippingProvider, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := httpx.DecodeJSON(resp, out); err != nil {
			return fmt.Errorf("%w: %v", domainErrors.ErrShippingProvider, err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized && token != "":
		return errUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return httpx.RateLimitError{
			RetryAfter: httpx.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        domainErrors.ErrShippingProvider,
		}
	default:
		c.logger.Error("shiprocket request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", httpx.ReadSnippet(resp)))
		return fmt.Errorf("%w: %s %s", domainErrors.ErrShippingProvider, endpoint, resp.Status)
	}
}
