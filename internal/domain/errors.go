package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the booking core and the catalog wraps
// exactly one of these.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrRecordNotFound    = errors.New("record not found")
	ErrTransactionFailed = errors.New("transaction failed")
)

var (
	ErrNoSeats           = fmt.Errorf("%w: no seats provided", ErrInvalidInput)
	ErrInvalidSeatNumber = fmt.Errorf("%w: malformed seat number", ErrInvalidInput)
	ErrUnknownSeats      = fmt.Errorf("%w: seat(s) do not exist", ErrInvalidInput)
	ErrInvalidRowSpec    = fmt.Errorf("%w: invalid seat row specification", ErrInvalidInput)

	ErrUserBlocked = fmt.Errorf("%w: user is blocked from booking", ErrForbidden)

	ErrSeatAlreadyBooked = fmt.Errorf("%w: seat(s) are already booked", ErrConflict)
	ErrDuplicateScreen   = fmt.Errorf("%w: screen name already exists", ErrConflict)
	ErrDuplicateShow     = fmt.Errorf("%w: show already exists for this time", ErrConflict)
	ErrScreenInUse       = fmt.Errorf("%w: screen has scheduled shows", ErrConflict)
	ErrUserAlreadyExists = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrEditConflict = errors.New("edit conflict")
)

// SeatError names the seat numbers that caused a booking attempt to fail.
type SeatError struct {
	Err   error
	Seats []string
}

func NewSeatConflictError(seats []string) *SeatError {
	return &SeatError{Err: ErrSeatAlreadyBooked, Seats: seats}
}

func NewUnknownSeatsError(seats []string) *SeatError {
	return &SeatError{Err: ErrUnknownSeats, Seats: seats}
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(e.Seats, ","))
}

func (e *SeatError) Unwrap() error {
	return e.Err
}
