// Package booking turns booking requests into committed ledger entries and
// booked seats, and undoes them on cancellation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/movie-booking-system/internal/booking"

// Manager coordinates a booking attempt. All seat checks and writes happen in
// the repository's unit of work; the manager validates, gates blocked users
// and announces the outcome.
type Manager struct {
	bookings  domain.BookingRepository
	users     domain.UserRepository
	publisher domain.EventPublisher
	logger    *slog.Logger

	tracer    trace.Tracer
	created   metric.Int64Counter
	cancelled metric.Int64Counter
	conflicts metric.Int64Counter
	rejected  metric.Int64Counter
}

func NewManager(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	publisher domain.EventPublisher,
	logger *slog.Logger) (*Manager, error) {

	meter := otel.Meter(instrumentationName)

	created, err := meter.Int64Counter("bookings.created",
		metric.WithDescription("Bookings committed"))
	if err != nil {
		return nil, err
	}

	cancelled, err := meter.Int64Counter("bookings.cancelled",
		metric.WithDescription("Bookings cancelled"))
	if err != nil {
		return nil, err
	}

	conflicts, err := meter.Int64Counter("bookings.conflicts",
		metric.WithDescription("Booking attempts that hit an already booked seat"))
	if err != nil {
		return nil, err
	}

	rejected, err := meter.Int64Counter("bookings.rejected",
		metric.WithDescription("Booking attempts refused before or during the unit of work"))
	if err != nil {
		return nil, err
	}

	return &Manager{
		bookings:  bookings,
		users:     users,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		created:   created,
		cancelled: cancelled,
		conflicts: conflicts,
		rejected:  rejected,
	}, nil
}

// Book reserves the requested seats. It either commits the ledger entry with
// every seat flipped to booked, or changes nothing.
func (m *Manager) Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	ctx, span := m.tracer.Start(ctx, "booking.Book")
	defer span.End()

	booking, err := domain.NewBooking(req)
	if err != nil {
		m.reject(ctx, span, "invalid", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("booking.username", booking.Username),
		attribute.Int("booking.movie_id", booking.MovieID),
		attribute.String("booking.scope", string(booking.Scope)),
		attribute.Int("booking.seat_count", len(booking.Seats)),
	)

	blocked, err := m.users.IsBlocked(ctx, booking.Username)
	if err != nil {
		m.fail(span, err)
		return nil, fmt.Errorf("check blocked user: %w", err)
	}
	if blocked {
		m.reject(ctx, span, "blocked", domain.ErrUserBlocked)
		return nil, domain.ErrUserBlocked
	}

	// Once started the unit of work runs to commit or rollback even if the
	// caller goes away.
	err = m.bookings.Create(context.WithoutCancel(ctx), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			m.conflicts.Add(ctx, 1)
			m.fail(span, err)
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrRecordNotFound):
			m.reject(ctx, span, "unknown", err)
		default:
			m.fail(span, err)
		}

		return nil, err
	}

	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("scope", string(booking.Scope))))
	span.SetAttributes(attribute.Int("booking.id", booking.ID))

	m.publish(ctx, domain.EventBookingConfirmed, booking)

	return booking, nil
}

// Cancel deletes the booking and returns its seats to the pool.
func (m *Manager) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	ctx, span := m.tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(attribute.Int("booking.id", id)))
	defer span.End()

	booking, err := m.bookings.Delete(context.WithoutCancel(ctx), id)
	if err != nil {
		m.fail(span, err)
		return nil, err
	}

	if _, ok := booking.Owner(); !ok {
		m.logger.InfoContext(ctx, "cancelled booking of a deleted show",
			"booking_id", booking.ID,
			"movie_id", booking.MovieID)
	}

	m.cancelled.Add(ctx, 1)

	m.publish(ctx, domain.EventBookingCancelled, booking)

	return booking, nil
}

func (m *Manager) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	event := domain.NewBookingEvent(eventType, booking)

	err := m.publisher.Publish(context.WithoutCancel(ctx), event)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to publish booking event",
			"event_id", event.ID,
			"type", eventType,
			"booking_id", booking.ID,
			"error", err)
	}
}

func (m *Manager) reject(ctx context.Context, span trace.Span, reason string, err error) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	m.fail(span, err)
}

func (m *Manager) fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
