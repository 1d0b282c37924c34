package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresStatsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStatsRepository(db *pgxpool.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{
		db: db,
	}
}

func (p *PostgresStatsRepository) Get(ctx context.Context) (*domain.Stats, error) {
	query := `SELECT
			(SELECT COUNT(*) FROM movies WHERE is_active),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings),
			(SELECT COUNT(*) FROM seats WHERE status = 'booked')
				+ (SELECT COUNT(*) FROM show_seats WHERE status = 'booked'),
			(SELECT COUNT(*) FROM seats WHERE status = 'available')
				+ (SELECT COUNT(*) FROM show_seats WHERE status = 'available'),
			(SELECT COUNT(*) FROM users)`

	var stats domain.Stats

	err := p.db.QueryRow(ctx, query).Scan(
		&stats.Movies,
		&stats.Bookings,
		&stats.Revenue,
		&stats.BookedSeats,
		&stats.AvailableSeats,
		&stats.Users,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
