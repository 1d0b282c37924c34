package mocks

import (
	"context"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateFunc           func(ctx context.Context, user *domain.User) error
	GetByTokenFunc       func(ctx context.Context, hash []byte, scope string) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	GetByIdFunc          func(ctx context.Context, id int) (*domain.User, error)
	GetAllFunc           func(ctx context.Context) ([]domain.User, error)
	UpdatePasswordFunc   func(ctx context.Context, user *domain.User) error
	IsBlockedFunc        func(ctx context.Context, username string) (bool, error)
	SetBlockedFunc       func(ctx context.Context, id int, blocked bool) error
	TouchFunc            func(ctx context.Context, username string) error
	SyncFromBookingsFunc func(ctx context.Context) (int, error)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) GetByToken(ctx context.Context, hash []byte, scope string) (*domain.User, error) {
	return m.GetByTokenFunc(ctx, hash, scope)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, user *domain.User) error {
	return m.UpdatePasswordFunc(ctx, user)
}

func (m *MockUserRepo) IsBlocked(ctx context.Context, username string) (bool, error) {
	return m.IsBlockedFunc(ctx, username)
}

func (m *MockUserRepo) SetBlocked(ctx context.Context, id int, blocked bool) error {
	return m.SetBlockedFunc(ctx, id, blocked)
}

func (m *MockUserRepo) Touch(ctx context.Context, username string) error {
	return m.TouchFunc(ctx, username)
}

func (m *MockUserRepo) SyncFromBookings(ctx context.Context) (int, error) {
	return m.SyncFromBookingsFunc(ctx)
}
