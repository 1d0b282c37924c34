package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Stats struct {
	Movies         int
	Bookings       int
	Revenue        decimal.Decimal
	BookedSeats    int
	AvailableSeats int
	Users          int
}

type StatsRepository interface {
	Get(ctx context.Context) (*Stats, error)
}
