package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"devevents/internal/domain"
)

// channel is the part of *amqp.Channel the producer publishes through.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Producer publishes catalog notifications as JSON to a topic exchange.
type Producer struct {
	// Rabbitmq DSN
	connStr  string
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel channel
}

func NewProducer(connStr, exchange string) *Producer {
	return &Producer{
		connStr:  connStr,
		exchange: exchange,
	}
}

// Open dials the broker and declares the exchange.
func (p *Producer) Open() error {
	if p.connStr == "" {
		return fmt.Errorf("connection string required")
	}

	conn, err := amqp.Dial(p.connStr)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %q: %w", p.exchange, err)
	}

	p.mu.Lock()
	p.conn, p.channel = conn, ch
	p.mu.Unlock()
	return nil
}

func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Publish sends payload under routingKey. ctx is accepted for interface
// compatibility; the AMQP client does not take one.
func (p *Producer) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", routingKey, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return fmt.Errorf("producer is not open")
	}
	return p.channel.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

// NoopPublisher logs notifications instead of sending them. Used when no
// broker is configured.
type NoopPublisher struct {
	Logger *slog.Logger
}

func (n NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	n.Logger.DebugContext(ctx, "notification not published (noop)", "routing_key", routingKey)
	return nil
}

var (
	_ domain.Publisher = (*Producer)(nil)
	_ domain.Publisher = NoopPublisher{}
)
