package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking unit of work commits. It is a
// notification for downstream consumers, never a source of truth.
type BookingEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	BookingID  int             `json:"booking_id"`
	Username   string          `json:"username"`
	MovieID    int             `json:"movie_id"`
	ShowID     *int            `json:"show_id,omitempty"`
	Seats      []string        `json:"seats"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking *Booking) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  booking.ID,
		Username:   booking.Username,
		MovieID:    booking.MovieID,
		ShowID:     booking.ShowID,
		Seats:      booking.Seats,
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}
