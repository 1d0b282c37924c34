package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
}

// amqpSession is one dialed connection with its publishing channel.
type amqpSession struct {
	ch    amqpChannel
	close func() error
}

// AMQPPublisher sends booking events to RabbitMQ. Each event type has its own
// durable queue named after the type and is routed through the default
// exchange. A channel closed by the broker is replaced on the next publish.
type AMQPPublisher struct {
	dial   func() (amqpSession, error)
	logger *slog.Logger

	mu      sync.Mutex
	session amqpSession
}

func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	return newAMQPPublisher(func() (amqpSession, error) { return dialAMQP(url) }, logger)
}

func newAMQPPublisher(dial func() (amqpSession, error), logger *slog.Logger) (*AMQPPublisher, error) {
	session, err := dial()
	if err != nil {
		return nil, err
	}

	return &AMQPPublisher{
		dial:    dial,
		logger:  logger,
		session: session,
	}, nil
}

func dialAMQP(url string) (amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return amqpSession{}, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return amqpSession{}, fmt.Errorf("rabbitmq channel: %w", err)
	}

	for _, queue := range []string{domain.EventBookingConfirmed, domain.EventBookingCancelled} {
		_, err = ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		)
		if err != nil {
			_ = conn.Close()
			return amqpSession{}, fmt.Errorf("rabbitmq queue declare %s: %w", queue, err)
		}
	}

	return amqpSession{ch: ch, close: conn.Close}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A publish that fails because the channel just closed is retried once
	// on a fresh connection.
	for attempt := 1; ; attempt++ {
		err = p.ensureSession()
		if err != nil {
			return err
		}

		err = p.session.ch.PublishWithContext(ctx,
			"",         // default exchange
			event.Type, // routing key = queue name
			false,      // mandatory
			false,      // immediate
			msg,
		)
		if err == nil {
			return nil
		}

		if attempt == 2 || !p.session.ch.IsClosed() {
			return fmt.Errorf("rabbitmq publish: %w", err)
		}
	}
}

// ensureSession re-dials when the broker has closed the channel. Callers hold
// p.mu.
func (p *AMQPPublisher) ensureSession() error {
	if p.session.ch != nil && !p.session.ch.IsClosed() {
		return nil
	}

	if p.session.close != nil {
		_ = p.session.close()
	}
	p.session = amqpSession{}

	session, err := p.dial()
	if err != nil {
		return err
	}

	p.logger.Info("rabbitmq connection re-established")
	p.session = session

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session.close == nil {
		return nil
	}

	err := p.session.close()
	p.session = amqpSession{}

	return err
}
