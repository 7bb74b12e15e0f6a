package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"spese-client/internal/core"
	"spese-client/internal/log"
)

const publishTimeout = 5 * time.Second

// ErrPublisherClosed is returned when publishing after Close.
var ErrPublisherClosed = errors.New("amqp publisher closed")

// channel is the subset of *amqp091.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends expense change events to a durable direct exchange.
type Publisher struct {
	conn         *amqp091.Connection
	ch           channel
	exchangeName string
	queueName    string
	logger       *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewPublisher dials url and declares the exchange, queue and binding.
func NewPublisher(url, exchangeName, queueName string, logger *log.Logger) (*Publisher, error) {
	if logger == nil {
		logger = log.Nop()
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setup(ch, exchangeName, queueName); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	p := newPublisher(ch, exchangeName, queueName, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchangeName, queueName string, logger *log.Logger) *Publisher {
	return &Publisher{
		ch:           ch,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(log.ComponentAMQP),
	}
}

func setup(ch *amqp091.Channel, exchangeName, queueName string) error {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key is the queue name on a direct exchange
	if err := ch.QueueBind(queueName, queueName, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// NotifyExpenseChanged publishes change as a persistent JSON message.
func (p *Publisher) NotifyExpenseChanged(ctx context.Context, change core.ExpenseChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}

	msg := NewExpenseEventMessage(change)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.EventID,
			Type:         msg.Type,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.DebugContext(ctx, "Published expense event",
		log.FieldExpenseID, msg.ExpenseID,
		"type", msg.Type,
		"exchange", p.exchangeName,
		"queue", p.queueName)

	return nil
}

// Close closes the channel and the connection. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
