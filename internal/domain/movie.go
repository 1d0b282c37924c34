package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var (
	DefaultClassicPrice = decimal.RequireFromString("381.36")
	DefaultPrimePrice   = decimal.RequireFromString("481.36")
)

const (
	DefaultLanguage = "English"
	DefaultFormat   = "2D"
	DefaultPicture  = "https://via.placeholder.com/300x400"
)

// Movie is a title in the catalog. ShowDate and ShowTime describe the single
// legacy showing that owns the movie scoped seat layout.
type Movie struct {
	ID           int
	Title        string
	ShowDate     time.Time
	ShowTime     string
	Language     string
	Format       string
	Price        decimal.Decimal
	ClassicPrice decimal.Decimal
	PrimePrice   decimal.Decimal
	Picture      string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, includeInactive bool) ([]Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Deactivate(ctx context.Context, id int) error
	UpdatePrices(ctx context.Context, classic, prime decimal.Decimal) (int, error)
}
