package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresBookingRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresBookingRepository(db *pgxpool.Pool, logger *slog.Logger) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db:     db,
		logger: logger,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	owner, ok := booking.Owner()
	if !ok {
		return fmt.Errorf("%w: booking has no seat owner", domain.ErrInvalidInput)
	}

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if owner.Kind == domain.OwnerShow {
			err := p.checkShowMovie(ctx, tx, owner.ID, booking.MovieID)
			if err != nil {
				return err
			}
		}

		statuses, err := lockSeats(ctx, tx, owner, booking.Seats)
		if err != nil {
			return err
		}

		if len(statuses) == 0 && owner.Kind == domain.OwnerMovie {
			exists, err := ownerExists(ctx, tx, owner)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrRecordNotFound
			}
		}

		var unknown, booked []string
		for _, seat := range booking.Seats {
			status, found := statuses[seat]
			switch {
			case !found:
				unknown = append(unknown, seat)
			case status == domain.SeatBooked:
				booked = append(booked, seat)
			}
		}

		if len(unknown) > 0 {
			return domain.NewUnknownSeatsError(unknown)
		}
		if len(booked) > 0 {
			return domain.NewSeatConflictError(booked)
		}

		query := `INSERT INTO bookings (username, user_id, user_email, movie_id, show_id, seat_scope, seats, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, booking_time`

		err = tx.QueryRow(ctx,
			query,
			booking.Username,
			booking.UserID,
			booking.UserEmail,
			booking.MovieID,
			booking.ShowID,
			string(booking.Scope),
			domain.JoinSeatList(booking.Seats),
			booking.TotalPrice).Scan(&booking.ID, &booking.CreatedAt)
		if err != nil {
			return err
		}

		updated, err := setSeatStatus(ctx, tx, owner, booking.Seats, domain.SeatBooked)
		if err != nil {
			return err
		}
		if updated != len(booking.Seats) {
			return fmt.Errorf("booked %d of %d seats for %s", updated, len(booking.Seats), owner)
		}

		// Activity tracking must never undo a booking, so it gets its own
		// savepoint.
		err = pgx.BeginFunc(ctx, tx, func(sp pgx.Tx) error {
			return touchUser(ctx, sp, booking.Username)
		})
		if err != nil {
			p.logger.WarnContext(ctx, "failed to record user activity",
				"username", booking.Username,
				"error", err)
		}

		return nil
	})
}

// checkShowMovie takes a share lock on the show so it cannot be deleted while
// the booking is written, and verifies it belongs to the movie.
func (p *PostgresBookingRepository) checkShowMovie(ctx context.Context, tx pgx.Tx, showID, movieID int) error {
	var showMovieID int

	err := tx.QueryRow(ctx, `SELECT movie_id FROM shows WHERE id = $1 FOR SHARE`, showID).Scan(&showMovieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	if showMovieID != movieID {
		return fmt.Errorf("%w: show %d does not belong to movie %d", domain.ErrInvalidInput, showID, movieID)
	}

	return nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, id int) (*domain.Booking, error) {
	var booking *domain.Booking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `SELECT id, username, user_id, user_email, movie_id, show_id, seat_scope, seats, total_price, booking_time
			FROM bookings
			WHERE id = $1
			FOR UPDATE`

		b, err := scanBooking(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		owner, ok := b.Owner()
		if ok {
			// Same lock order as Create.
			_, err = lockSeats(ctx, tx, owner, b.Seats)
			if err != nil {
				return err
			}

			_, err = setSeatStatus(ctx, tx, owner, b.Seats, domain.SeatAvailable)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
		if err != nil {
			return err
		}

		booking = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

const bookingSummaryQuery = `SELECT b.id, b.username, b.user_id, b.user_email, b.movie_id, b.show_id,
		b.seat_scope, b.seats, b.total_price, b.booking_time,
		m.title, s.show_date, to_char(s.show_time, 'HH24:MI'), s.format
	FROM bookings b
	JOIN movies m ON m.id = b.movie_id
	LEFT JOIN shows s ON s.id = b.show_id`

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]domain.BookingSummary, error) {
	query := bookingSummaryQuery + `
		ORDER BY b.booking_time DESC, b.id DESC`

	return p.querySummaries(ctx, query)
}

func (p *PostgresBookingRepository) GetByUsername(ctx context.Context, username string) ([]domain.BookingSummary, error) {
	query := bookingSummaryQuery + `
		WHERE b.username = $1
		ORDER BY b.booking_time DESC, b.id DESC`

	return p.querySummaries(ctx, query, username)
}

func (p *PostgresBookingRepository) GetByMovieId(ctx context.Context, movieID int) ([]domain.BookingSummary, error) {
	query := bookingSummaryQuery + `
		WHERE b.movie_id = $1
		ORDER BY b.booking_time DESC, b.id DESC`

	return p.querySummaries(ctx, query, movieID)
}

func (p *PostgresBookingRepository) querySummaries(ctx context.Context, query string, args ...any) ([]domain.BookingSummary, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.BookingSummary{}

	for rows.Next() {
		var summary domain.BookingSummary
		var scope, seats string

		err := rows.Scan(
			&summary.ID,
			&summary.Username,
			&summary.UserID,
			&summary.UserEmail,
			&summary.MovieID,
			&summary.ShowID,
			&scope,
			&seats,
			&summary.TotalPrice,
			&summary.CreatedAt,
			&summary.MovieTitle,
			&summary.ShowDate,
			&summary.ShowTime,
			&summary.ShowFormat,
		)
		if err != nil {
			return nil, err
		}

		summary.Scope = domain.OwnerKind(scope)
		summary.Seats = domain.ParseSeatList(seats)

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var scope, seats string

	err := row.Scan(
		&booking.ID,
		&booking.Username,
		&booking.UserID,
		&booking.UserEmail,
		&booking.MovieID,
		&booking.ShowID,
		&scope,
		&seats,
		&booking.TotalPrice,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Scope = domain.OwnerKind(scope)
	booking.Seats = domain.ParseSeatList(seats)

	return &booking, nil
}
