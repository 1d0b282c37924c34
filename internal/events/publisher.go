// Package events delivers booking lifecycle notifications to a message
// broker after the booking has been committed.
package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const (
	BrokerNone = "none"
	BrokerAMQP = "amqp"
	BrokerNATS = "nats"
)

type Config struct {
	Broker  string
	AMQPUrl string
	NATSUrl string
}

// New returns the publisher selected by cfg.Broker.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (domain.EventPublisher, error) {
	switch cfg.Broker {
	case "", BrokerNone:
		return NewLogPublisher(logger), nil
	case BrokerAMQP:
		p, err := NewAMQPPublisher(cfg.AMQPUrl, logger)
		if err != nil {
			return nil, err
		}

		return p, nil
	case BrokerNATS:
		p, err := NewNATSPublisher(ctx, cfg.NATSUrl, logger)
		if err != nil {
			return nil, err
		}

		return p, nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.Broker)
	}
}

// LogPublisher only writes events to the log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.logger.InfoContext(ctx, "booking event",
		"event_id", event.ID,
		"type", event.Type,
		"booking_id", event.BookingID,
		"username", event.Username,
		"seats", event.Seats)

	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
