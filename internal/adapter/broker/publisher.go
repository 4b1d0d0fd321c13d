package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, kind string, payload any) error
	Close() error
}

// Envelope is the JSON body of every published event.
type Envelope struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (channel, func() error, error)

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn.Close, nil
}

// AMQPPublisher publishes persistent JSON messages to a durable queue.
// The connection is opened lazily and reopened after a failed publish.
type AMQPPublisher struct {
	url    string
	queue  string
	logger *slog.Logger
	dial   dialFunc

	mu        sync.Mutex
	ch        channel
	closeConn func() error
}

// NewAMQPPublisher creates a publisher for queue on the broker at url.
func NewAMQPPublisher(url, queue string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, logger: logger, dial: dialAMQP}
}

func (p *AMQPPublisher) openChannel() (channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, closeConn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = closeConn()
		return nil, fmt.Errorf("amqp declare %s: %w", p.queue, err)
	}
	p.ch, p.closeConn = ch, closeConn
	return ch, nil
}

// Publish sends kind with payload wrapped in an Envelope.
func (p *AMQPPublisher) Publish(ctx context.Context, kind string, payload any) error {
	id := uuid.NewString()
	body, err := json.Marshal(Envelope{ID: id, Kind: kind, OccurredAt: time.Now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.openChannel()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Type:         kind,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("amqp publish %s: %w", kind, err)
	}
	p.logger.Info("event published", slog.String("kind", kind), slog.String("message_id", id))
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.closeConn != nil {
		_ = p.closeConn()
	}
	p.ch, p.closeConn = nil, nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// NopPublisher drops events when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

// NewNopPublisher returns a NopPublisher.
func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(_ context.Context, kind string, _ any) error {
	p.logger.Debug("broker not configured, event dropped", slog.String("kind", kind))
	return nil
}

func (p *NopPublisher) Close() error { return nil }
