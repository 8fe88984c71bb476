package broker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"main/internal/config"
	interfaces "main/internal/domain/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher fans canonical events out on RabbitMQ fanout exchanges, one
// exchange per event kind. Downstream services outside this engine bind
// their own queues to these exchanges.
type Publisher struct {
	cfg     config.RabbitConfig
	logger  *logrus.Entry
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

var _ interfaces.Bus = (*Publisher)(nil)

// NewPublisher dials RabbitMQ and declares the configured exchanges.
func NewPublisher(cfg config.RabbitConfig, logger *logrus.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create channel: %w", err)
	}

	declared := map[string]struct{}{}
	for _, name := range []string{cfg.QuoteExchange, cfg.TradeExchange, cfg.DepthExchange} {
		if name == "" {
			ch.Close()
			conn.Close()
			return nil, errors.New("exchange name cannot be empty")
		}
		if _, ok := declared[name]; ok {
			continue
		}
		if err := ch.ExchangeDeclare(name, "fanout", true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", name, err)
		}
		declared[name] = struct{}{}
	}

	return &Publisher{
		cfg:     cfg,
		logger:  logger.WithField("component", "broker"),
		conn:    conn,
		channel: ch,
	}, nil
}

// Publish sends payload to the fanout exchange named by topic.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.PublishWithContext(ctx, topic, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		p.logger.WithError(err).Error("close rabbitmq channel")
	}
	return p.conn.Close()
}
