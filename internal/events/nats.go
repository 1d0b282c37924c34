package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	bookingStream  = "BOOKINGS"
	subjectPrefix  = "bookings."
	publishTimeout = 5 * time.Second
)

// NATSPublisher writes booking events to a JetStream stream. The event id is
// used as the message id so retried publishes are deduplicated.
type NATSPublisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewNATSPublisher(ctx context.Context, url string, logger *slog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("movie-booking-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream := jetstream.StreamConfig{
		Name:        bookingStream,
		Description: "Booking lifecycle events",
		Subjects:    []string{subjectPrefix + ">"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Discard:     jetstream.DiscardOld,
		Duplicates:  2 * time.Minute,
	}

	_, err = js.CreateOrUpdateStream(ctx, stream)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create booking stream: %w", err)
	}

	return &NATSPublisher{
		nc: nc,
		js: js,
	}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err = p.js.Publish(pubCtx, subjectFor(event), data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}

	return nil
}

func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}

// subjectFor maps booking.confirmed onto bookings.confirmed and so on.
func subjectFor(event domain.BookingEvent) string {
	switch event.Type {
	case domain.EventBookingConfirmed:
		return subjectPrefix + "confirmed"
	case domain.EventBookingCancelled:
		return subjectPrefix + "cancelled"
	default:
		return subjectPrefix + "other"
	}
}
