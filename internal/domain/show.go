package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Show struct {
	ID        int
	MovieID   int
	ScreenID  int
	Date      time.Time
	Time      string
	Format    string
	CreatedAt time.Time

	// Read side projections joined from movies and screens.
	MovieTitle   string
	Language     string
	ClassicPrice decimal.Decimal
	PrimePrice   decimal.Decimal
	Picture      string
	ScreenName   string
	Rows         int
	Cols         int
}

type ShowRepository interface {
	// Create inserts the show and materializes its seats from the screen grid
	// in the same transaction.
	Create(ctx context.Context, show *Show) error
	GetById(ctx context.Context, id int) (*Show, error)
	GetAll(ctx context.Context) ([]Show, error)
	GetByMovieId(ctx context.Context, movieID int) ([]Show, error)
	Delete(ctx context.Context, id int) error
	RegenerateSeats(ctx context.Context, id int) (int, error)
}
