package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresScreenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreenRepository(db *pgxpool.Pool) *PostgresScreenRepository {
	return &PostgresScreenRepository{
		db: db,
	}
}

func (p *PostgresScreenRepository) Create(ctx context.Context, screen *domain.Screen) error {
	query := `INSERT INTO screens (name, row_count, col_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx, query, screen.Name, screen.Rows, screen.Cols).Scan(&screen.ID, &screen.CreatedAt)
	if err != nil {
		return screenWriteError(err)
	}

	return nil
}

func (p *PostgresScreenRepository) GetAll(ctx context.Context) ([]domain.Screen, error) {
	query := `SELECT id, name, row_count, col_count, created_at
		FROM screens
		ORDER BY name`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screens := []domain.Screen{}

	for rows.Next() {
		var screen domain.Screen

		err := rows.Scan(&screen.ID, &screen.Name, &screen.Rows, &screen.Cols, &screen.CreatedAt)
		if err != nil {
			return nil, err
		}

		screens = append(screens, screen)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screens, nil
}

func (p *PostgresScreenRepository) GetById(ctx context.Context, id int) (*domain.Screen, error) {
	query := `SELECT id, name, row_count, col_count, created_at
		FROM screens
		WHERE id = $1`

	var screen domain.Screen

	err := p.db.QueryRow(ctx, query, id).Scan(&screen.ID, &screen.Name, &screen.Rows, &screen.Cols, &screen.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screen, nil
}

// Update changes the screen definition only. Seats of existing shows keep the
// grid they were generated with.
func (p *PostgresScreenRepository) Update(ctx context.Context, screen *domain.Screen) error {
	query := `UPDATE screens
		SET name = $1, row_count = $2, col_count = $3
		WHERE id = $4
		RETURNING created_at`

	err := p.db.QueryRow(ctx, query, screen.Name, screen.Rows, screen.Cols, screen.ID).Scan(&screen.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return screenWriteError(err)
	}

	return nil
}

func (p *PostgresScreenRepository) Delete(ctx context.Context, id int) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM screens WHERE id = $1`, id)
	if err != nil {
		if isPgError(err, pgerrcode.ForeignKeyViolation) {
			return domain.ErrScreenInUse
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func screenWriteError(err error) error {
	switch {
	case isPgError(err, pgerrcode.UniqueViolation):
		return domain.ErrDuplicateScreen
	case isPgError(err, pgerrcode.CheckViolation):
		return domain.ErrInvalidRowSpec
	default:
		return err
	}
}
