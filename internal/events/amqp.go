package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vibe-commerce/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// amqpPublisher publishes order events to RabbitMQ on the default exchange.
type amqpPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger zerolog.Logger
}

// NewAMQPPublisher connects to RabbitMQ and declares the order-placed queue
// so publishing never fails due to missing infra.
func NewAMQPPublisher(url string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}

	return &amqpPublisher{
		conn:   conn,
		ch:     ch,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}, nil
}

// PublishOrderPlaced emits an OrderPlaced event for the given order.
func (p *amqpPublisher) PublishOrderPlaced(ctx context.Context, order *model.Order) error {
	body, err := json.Marshal(NewOrderPlaced(order))
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",               // default exchange
		OrderPlacedQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish OrderPlaced: %w", err)
	}

	p.logger.Debug().Str("order_id", order.ID.String()).Msg("order placed event published")

	return nil
}

// Close closes the channel and connection.
func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
