package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresNotificationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		db: db,
	}
}

func (p *PostgresNotificationRepository) CreateForUsers(ctx context.Context, message string, usernames []string) (int, error) {
	rows := make([][]any, 0, len(usernames))
	for _, username := range usernames {
		rows = append(rows, []any{username, message})
	}

	copied, err := p.db.CopyFrom(
		ctx,
		pgx.Identifier{"notifications"},
		[]string{"username", "message"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, err
	}

	return int(copied), nil
}

func (p *PostgresNotificationRepository) Broadcast(ctx context.Context, message string) error {
	_, err := p.db.Exec(ctx, `INSERT INTO notifications (username, message) VALUES (NULL, $1)`, message)

	return err
}

func (p *PostgresNotificationRepository) GetAll(ctx context.Context, username string) ([]domain.Notification, error) {
	query := `SELECT id, username, message, created_at, delivered
		FROM notifications
		WHERE $1 = '' OR username = $1 OR username IS NULL
		ORDER BY created_at DESC, id DESC`

	rows, err := p.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}

	for rows.Next() {
		var n domain.Notification

		err := rows.Scan(&n.ID, &n.Username, &n.Message, &n.CreatedAt, &n.Delivered)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
