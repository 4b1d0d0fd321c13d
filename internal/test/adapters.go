package test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/mysticmart/internal/adapter/broker"
	"github.com/polkiloo/mysticmart/internal/adapter/cache"
	"github.com/polkiloo/mysticmart/internal/adapter/mailer"
	"github.com/polkiloo/mysticmart/internal/adapter/razorpay"
	"github.com/polkiloo/mysticmart/internal/adapter/shiprocket"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

// GatewayStub fakes the payment gateway.
type GatewayStub struct {
	CreateFn func(context.Context, razorpay.OrderRequest) (*model.GatewayOrder, error)
	VerifyFn func(model.PaymentProof) error
	Key      string
	Requests []razorpay.OrderRequest
}

// CreateOrder records req and echoes it back as a created order.
func (s *GatewayStub) CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*model.GatewayOrder, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.GatewayOrder{ID: "order_test", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}, nil
}

// VerifySignature accepts every proof unless overridden.
func (s *GatewayStub) VerifySignature(proof model.PaymentProof) error {
	if s.VerifyFn != nil {
		return s.VerifyFn(proof)
	}
	return nil
}

// KeyID returns Key or a default.
func (s *GatewayStub) KeyID() string {
	if s.Key != "" {
		return s.Key
	}
	return "rzp_test_key"
}

// ShippingStub fakes the courier aggregator.
type ShippingStub struct {
	CreateFn func(context.Context, *model.Order) (string, error)
	AssignFn func(context.Context, string) (*model.Shipment, error)
	Created  []int64
	Assigned []string
}

// CreateShipment returns "shp-<order id>" unless overridden.
func (s *ShippingStub) CreateShipment(ctx context.Context, order *model.Order) (string, error) {
	s.Created = append(s.Created, order.ID)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return "shp-1", nil
}

// AssignAWB returns a fixed courier unless overridden.
func (s *ShippingStub) AssignAWB(ctx context.Context, shipmentID string) (*model.Shipment, error) {
	s.Assigned = append(s.Assigned, shipmentID)
	if s.AssignFn != nil {
		return s.AssignFn(ctx, shipmentID)
	}
	return &model.Shipment{ShipmentID: shipmentID, AWBCode: "AWB42", CourierName: "Delhivery"}, nil
}

// MailerStub records sent messages.
type MailerStub struct {
	Err  error
	mu   sync.Mutex
	Sent []mailer.Message
}

// Send records msg.
func (s *MailerStub) Send(ctx context.Context, msg mailer.Message) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, msg)
	return nil
}

// Published captures PublisherStub.Publish arguments.
type Published struct {
	Kind    string
	Payload any
}

// PublisherStub records published events.
type PublisherStub struct {
	Err    error
	Events []Published
	Closed bool
}

// Publish records the event.
func (s *PublisherStub) Publish(ctx context.Context, kind string, payload any) error {
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, Published{Kind: kind, Payload: payload})
	return nil
}

// Close marks the publisher closed.
func (s *PublisherStub) Close() error {
	s.Closed = true
	return nil
}

// MemoryCache is an in-process cache.Cache.
type MemoryCache struct {
	Err    error
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]string)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.Err != nil {
		return "", false, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *MemoryCache) Incr(ctx context.Context, key string) (int64, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *MemoryCache) Key(parts ...string) string {
	return "test:" + strings.Join(parts, ":")
}

func (c *MemoryCache) Close() error { return nil }

// Len reports the number of stored keys.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// NotifierStub counts wake-ups.
type NotifierStub struct {
	mu    sync.Mutex
	Calls int
}

// Notify increments Calls.
func (n *NotifierStub) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls++
}

// Count returns Calls under lock.
func (n *NotifierStub) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Calls
}

var (
	_ razorpay.Gateway    = (*GatewayStub)(nil)
	_ shiprocket.Provider = (*ShippingStub)(nil)
	_ mailer.Sender       = (*MailerStub)(nil)
	_ broker.Publisher    = (*PublisherStub)(nil)
	_ cache.Cache         = (*MemoryCache)(nil)
)
