package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

// Create schedules the show and fills its seat grid from the screen. The call
// returns only once both are committed.
func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var active bool

		err := tx.QueryRow(ctx, `SELECT is_active FROM movies WHERE id = $1`, show.MovieID).Scan(&active)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}
		if !active {
			return domain.ErrRecordNotFound
		}

		var screen domain.Screen

		err = tx.QueryRow(ctx,
			`SELECT id, name, row_count, col_count FROM screens WHERE id = $1 FOR SHARE`,
			show.ScreenID).Scan(&screen.ID, &screen.Name, &screen.Rows, &screen.Cols)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query := `INSERT INTO shows (movie_id, screen_id, show_date, show_time, format)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`

		err = tx.QueryRow(ctx,
			query,
			show.MovieID,
			show.ScreenID,
			show.Date,
			show.Time,
			show.Format).Scan(&show.ID, &show.CreatedAt)
		if err != nil {
			switch {
			case isPgError(err, pgerrcode.UniqueViolation):
				return domain.ErrDuplicateShow
			case isPgError(err, pgerrcode.ForeignKeyViolation):
				return domain.ErrRecordNotFound
			default:
				return err
			}
		}

		numbers, err := domain.GenerateSeatNumbers(screen.RowSpecs())
		if err != nil {
			return err
		}

		_, err = insertSeats(ctx, tx, domain.ShowOwner(show.ID), numbers)
		if err != nil {
			return err
		}

		show.ScreenName = screen.Name
		show.Rows = screen.Rows
		show.Cols = screen.Cols

		return nil
	})
}

const showSelect = `SELECT s.id, s.movie_id, s.screen_id, s.show_date, to_char(s.show_time, 'HH24:MI'),
		s.format, s.created_at, m.title, m.language, m.classic_price, m.prime_price, m.picture,
		sc.name, sc.row_count, sc.col_count
	FROM shows s
	JOIN movies m ON m.id = s.movie_id
	JOIN screens sc ON sc.id = s.screen_id`

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := showSelect + `
		WHERE s.id = $1`

	show, err := scanShow(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return show, nil
}

func (p *PostgresShowRepository) GetAll(ctx context.Context) ([]domain.Show, error) {
	query := showSelect + `
		WHERE m.is_active
		ORDER BY s.show_date, s.show_time, s.id`

	return p.queryShows(ctx, query)
}

func (p *PostgresShowRepository) GetByMovieId(ctx context.Context, movieID int) ([]domain.Show, error) {
	query := showSelect + `
		WHERE s.movie_id = $1
		ORDER BY s.show_date, s.show_time, s.id`

	return p.queryShows(ctx, query, movieID)
}

func (p *PostgresShowRepository) queryShows(ctx context.Context, query string, args ...any) ([]domain.Show, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []domain.Show{}

	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}

		shows = append(shows, *show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

// Delete drops the show and its seats. Bookings made for it stay in the
// ledger with no show reference.
func (p *PostgresShowRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowRepository) RegenerateSeats(ctx context.Context, id int) (int, error) {
	query := `SELECT sc.row_count, sc.col_count
		FROM shows s
		JOIN screens sc ON sc.id = s.screen_id
		WHERE s.id = $1`

	var screen domain.Screen

	err := p.db.QueryRow(ctx, query, id).Scan(&screen.Rows, &screen.Cols)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrRecordNotFound
		}

		return 0, err
	}

	numbers, err := domain.GenerateSeatNumbers(screen.RowSpecs())
	if err != nil {
		return 0, err
	}

	return insertSeats(ctx, p.db, domain.ShowOwner(id), numbers)
}

func scanShow(row pgx.Row) (*domain.Show, error) {
	var show domain.Show

	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.ScreenID,
		&show.Date,
		&show.Time,
		&show.Format,
		&show.CreatedAt,
		&show.MovieTitle,
		&show.Language,
		&show.ClassicPrice,
		&show.PrimePrice,
		&show.Picture,
		&show.ScreenName,
		&show.Rows,
		&show.Cols,
	)
	if err != nil {
		return nil, err
	}

	return &show, nil
}
