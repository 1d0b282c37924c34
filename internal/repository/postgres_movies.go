package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// Create inserts the movie together with its default seat layout.
func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	numbers, err := domain.GenerateSeatNumbers(domain.DefaultMovieRowSpecs)
	if err != nil {
		return err
	}

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO movies (title, show_date, show_time, language, format, price, classic_price, prime_price, picture)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, is_active, created_at, updated_at`

		err := tx.QueryRow(ctx,
			query,
			movie.Title,
			movie.ShowDate,
			movie.ShowTime,
			movie.Language,
			movie.Format,
			movie.Price,
			movie.ClassicPrice,
			movie.PrimePrice,
			movie.Picture).Scan(&movie.ID, &movie.IsActive, &movie.CreatedAt, &movie.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = insertSeats(ctx, tx, domain.MovieOwner(movie.ID), numbers)

		return err
	})
}

const movieColumns = `id, title, show_date, to_char(show_time, 'HH24:MI'), language, format,
	price, classic_price, prime_price, picture, is_active, created_at, updated_at`

func (p *PostgresMovieRepository) GetAll(ctx context.Context, includeInactive bool) ([]domain.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE is_active OR $1
		ORDER BY title, id`

	rows, err := p.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, *movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		WHERE id = $1 AND is_active`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, show_date = $2, show_time = $3, language = $4, format = $5,
			price = $6, classic_price = $7, prime_price = $8, picture = $9, updated_at = NOW()
		WHERE id = $10 AND is_active
		RETURNING updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.ShowDate,
		movie.ShowTime,
		movie.Language,
		movie.Format,
		movie.Price,
		movie.ClassicPrice,
		movie.PrimePrice,
		movie.Picture,
		movie.ID).Scan(&movie.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Deactivate(ctx context.Context, id int) error {
	query := `UPDATE movies
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) UpdatePrices(ctx context.Context, classic, prime decimal.Decimal) (int, error) {
	query := `UPDATE movies
		SET classic_price = $1, prime_price = $2, updated_at = NOW()
		WHERE is_active`

	tag, err := p.db.Exec(ctx, query, classic, prime)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ShowDate,
		&movie.ShowTime,
		&movie.Language,
		&movie.Format,
		&movie.Price,
		&movie.ClassicPrice,
		&movie.PrimePrice,
		&movie.Picture,
		&movie.IsActive,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}
