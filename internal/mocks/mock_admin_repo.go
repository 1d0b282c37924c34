package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepo struct {
	mock.Mock
	domain.NotificationRepository
}

func (m *MockNotificationRepo) CreateForUsers(ctx context.Context, message string, usernames []string) (int, error) {
	args := m.Called(ctx, message, usernames)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepo) Broadcast(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetAll(ctx context.Context, username string) ([]domain.Notification, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) Get(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
