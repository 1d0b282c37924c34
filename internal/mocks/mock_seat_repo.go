package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) List(ctx context.Context, owner domain.SeatOwner) ([]domain.Seat, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) Generate(ctx context.Context, owner domain.SeatOwner, specs []domain.RowSpec) (int, error) {
	args := m.Called(ctx, owner, specs)
	return args.Int(0), args.Error(1)
}

func (m *MockSeatRepo) SetStatus(
	ctx context.Context,
	owner domain.SeatOwner,
	seatNumbers []string,
	status domain.SeatStatus) (int, error) {

	args := m.Called(ctx, owner, seatNumbers, status)
	return args.Int(0), args.Error(1)
}

func (m *MockSeatRepo) ResetAll(ctx context.Context, owner domain.SeatOwner) (int, error) {
	args := m.Called(ctx, owner)
	return args.Int(0), args.Error(1)
}
