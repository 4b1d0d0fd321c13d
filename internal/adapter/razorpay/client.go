package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/polkiloo/mysticmart/internal/adapter/httpx"
	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// Gateway creates gateway orders and verifies checkout signatures.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*model.GatewayOrder, error)
	VerifySignature(proof model.PaymentProof) error
	KeyID() string
}

// OrderRequest describes an order to open at the gateway. Amount is in minor units.
type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// HTTPClient talks to the Razorpay Orders API.
type HTTPClient struct {
	baseURL    *url.URL
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a Razorpay client. Empty credentials are allowed and reported per call.
func NewHTTPClient(baseURL, keyID, keySecret string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := httpx.ParseBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("razorpay: %w", err)
	}
	return &HTTPClient{
		baseURL:    parsed,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: httpx.NewClient(),
		logger:     logger,
	}, nil
}

// KeyID is the public key handed to the browser checkout.
func (c *HTTPClient) KeyID() string {
	return c.keyID
}

// CreateOrder opens an order at the gateway.
func (c *HTTPClient) CreateOrder(ctx context.Context, in OrderRequest) (*model.GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, domainErrors.ErrPaymentNotConfigured
	}

	req, err := httpx.NewJSONRequest(ctx, http.MethodPost, httpx.Endpoint(c.baseURL, "/v1/orders"), in)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var data orderResponse
		if err := httpx.DecodeJSON(resp, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrPaymentGateway, err)
		}
		return &model.GatewayOrder{
			ID:       data.ID,
			Amount:   data.Amount,
			Currency: data.Currency,
			Receipt:  data.Receipt,
			Status:   data.Status,
		}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, httpx.RateLimitError{
			RetryAfter: httpx.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        domainErrors.ErrPaymentGateway,
		}
	default:
		c.logger.Error("razorpay create order failed",
			slog.Int("status", resp.StatusCode),
			slog.String("receipt", in.Receipt),
			slog.String("body", httpx.ReadSnippet(resp)))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrPaymentGateway, resp.Status)
	}
}

// VerifySignature checks the checkout signature in constant time.
func (c *HTTPClient) VerifySignature(proof model.PaymentProof) error {
	if c.keySecret == "" {
		return domainErrors.ErrPaymentNotConfigured
	}
	expected := Sign(c.keySecret, proof.GatewayOrderID, proof.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(proof.Signature)) {
		return domainErrors.ErrInvalidSignature
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 of "orderID|paymentID".
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
