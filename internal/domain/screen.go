package domain

import (
	"context"
	"time"
)

type Screen struct {
	ID        int
	Name      string
	Rows      int
	Cols      int
	CreatedAt time.Time
}

func (s Screen) RowSpecs() []RowSpec {
	return GridRowSpecs(s.Rows, s.Cols)
}

type ScreenRepository interface {
	Create(ctx context.Context, screen *Screen) error
	GetAll(ctx context.Context) ([]Screen, error)
	GetById(ctx context.Context, id int) (*Screen, error)
	Update(ctx context.Context, screen *Screen) error
	Delete(ctx context.Context, id int) error
}
