// Package kitchen announces completed sales to the kitchen over RabbitMQ.
package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/pkg/config"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/multierr"
)

// RoutingKeyPrefix is followed by the payment method, e.g. kitchen.ticket.cash.
const RoutingKeyPrefix = "kitchen.ticket."

// Notifier receives every completed sale.
type Notifier interface {
	Notify(ctx context.Context, sale sales.Sale) error
}

// Nop drops every notification. Used when no broker is configured.
type Nop struct{}

func (Nop) Notify(context.Context, sales.Sale) error { return nil }

// Channel is the slice of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends kitchen tickets to a durable topic exchange.
type Publisher struct {
	ch       Channel
	conn     *amqp.Connection
	exchange string
}

// Dial connects to the broker in cfg and declares the exchange.
func Dial(ctx context.Context, cfg config.KitchenConfig, logg *logger.Logger) (*Publisher, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kitchen amqp url is not configured")
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	pub, err := NewPublisher(ch, cfg.Exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	pub.conn = conn
	if logg != nil {
		logg.Info(logg.WithField(ctx, "exchange", cfg.Exchange), "kitchen.publisher_connected")
	}
	return pub, nil
}

// NewPublisher declares exchange on ch and returns a publisher bound to it.
func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if ch == nil {
		return nil, errors.New("amqp channel required")
	}
	if exchange == "" {
		return nil, errors.New("exchange name required")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

func (p *Publisher) Notify(ctx context.Context, sale sales.Sale) error {
	body, err := json.Marshal(TicketFromSale(sale))
	if err != nil {
		return fmt.Errorf("encode ticket: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyPrefix+sale.PaymentMethod.String(), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    sale.ID,
		Timestamp:    ticketTime(sale),
		Body:         body,
	})
}

func ticketTime(sale sales.Sale) time.Time {
	if sale.CompletedAt != nil {
		return sale.CompletedAt.UTC()
	}
	return sale.CreatedAt.UTC()
}

// Close releases the channel and, when Dial opened it, the connection.
func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = multierr.Append(err, p.ch.Close())
	}
	if p.conn != nil {
		err = multierr.Append(err, p.conn.Close())
	}
	return err
}
