package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingRequest is what a client submits to reserve seats. Seats is the raw
// comma separated list as received.
type BookingRequest struct {
	Username   string
	UserID     *int
	UserEmail  *string
	MovieID    int
	ShowID     *int
	Seats      string
	TotalPrice decimal.Decimal
}

type Booking struct {
	ID         int
	Username   string
	UserID     *int
	UserEmail  *string
	MovieID    int
	ShowID     *int
	Scope      OwnerKind
	Seats      []string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// MaxSeatListLength bounds the stored, comma joined seat list of a booking.
const MaxSeatListLength = 500

// NewBooking validates the request and turns it into a booking ready to be
// committed. No store access happens here.
func NewBooking(req BookingRequest) (*Booking, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if req.MovieID <= 0 {
		return nil, fmt.Errorf("%w: movie id is required", ErrInvalidInput)
	}
	if req.ShowID != nil && *req.ShowID <= 0 {
		return nil, fmt.Errorf("%w: show id must be positive", ErrInvalidInput)
	}
	if req.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: total price must not be negative", ErrInvalidInput)
	}

	seats := ParseSeatList(req.Seats)
	if len(seats) == 0 {
		return nil, ErrNoSeats
	}

	for _, seat := range seats {
		if !ValidSeatNumber(seat) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeatNumber, seat)
		}
	}

	if len(JoinSeatList(seats)) > MaxSeatListLength {
		return nil, fmt.Errorf("%w: seat list exceeds %d characters", ErrInvalidInput, MaxSeatListLength)
	}

	owner := OwnerOf(req.MovieID, req.ShowID)

	booking := &Booking{
		Username:   req.Username,
		UserID:     req.UserID,
		UserEmail:  req.UserEmail,
		MovieID:    req.MovieID,
		Scope:      owner.Kind,
		Seats:      seats,
		TotalPrice: req.TotalPrice,
	}
	if owner.Kind == OwnerShow {
		booking.ShowID = req.ShowID
	}

	return booking, nil
}

// Owner reports the seat set the booking holds seats in. The second value is
// false for a show scoped booking whose show has since been deleted.
func (b Booking) Owner() (SeatOwner, bool) {
	if b.Scope == OwnerShow {
		if b.ShowID == nil {
			return SeatOwner{}, false
		}

		return ShowOwner(*b.ShowID), true
	}

	return MovieOwner(b.MovieID), true
}

type BookingSummary struct {
	Booking
	MovieTitle string
	ShowDate   *time.Time
	ShowTime   *string
	ShowFormat *string
}

type BookingRepository interface {
	// Create locks the requested seats, verifies them, writes the ledger row
	// and flips the seats to booked as one unit of work.
	Create(ctx context.Context, booking *Booking) error
	// Delete removes the ledger row and restores its seats as one unit of work.
	Delete(ctx context.Context, id int) (*Booking, error)
	GetAll(ctx context.Context) ([]BookingSummary, error)
	GetByUsername(ctx context.Context, username string) ([]BookingSummary, error)
	GetByMovieId(ctx context.Context, movieID int) ([]BookingSummary, error)
}
