package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a directory entry. Accounts created by signup carry credentials,
// while users first seen through a booking only have a username.
type User struct {
	ID           int
	Username     string
	Name         string
	Email        string
	Password     password
	Role         Role
	Phone        string
	IsBlocked    bool
	CreatedAt    time.Time
	LastActive   *time.Time
	Version      int
	BookingCount int
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	if len(p.Hash) == 0 {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
	GetByToken(ctx context.Context, tokenHash []byte, tokenScope string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	UpdatePassword(ctx context.Context, user *User) error
	IsBlocked(ctx context.Context, username string) (bool, error)
	SetBlocked(ctx context.Context, id int, blocked bool) error
	// Touch creates the username if absent and refreshes its last activity.
	Touch(ctx context.Context, username string) error
	SyncFromBookings(ctx context.Context) (int, error)
}
