package domain

import (
	"context"
	"time"
)

// Notification is a message from an admin. A nil Username means it was
// broadcast to everyone.
type Notification struct {
	ID        int
	Username  *string
	Message   string
	CreatedAt time.Time
	Delivered bool
}

type NotificationRepository interface {
	CreateForUsers(ctx context.Context, message string, usernames []string) (int, error)
	Broadcast(ctx context.Context, message string) error
	// GetAll lists every notification, or only those visible to username
	// (its own plus broadcasts) when username is not empty.
	GetAll(ctx context.Context, username string) ([]Notification, error)
}
