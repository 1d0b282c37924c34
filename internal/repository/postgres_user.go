package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (username, name, email, password_hash, role, phone, last_active)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NOW())
		RETURNING id, created_at, last_active, version`

	err := p.db.QueryRow(ctx,
		query,
		user.Username,
		user.Name,
		user.Email,
		user.Password.Hash,
		string(user.Role),
		user.Phone).Scan(&user.ID, &user.CreatedAt, &user.LastActive, &user.Version)

	if err != nil {
		if isPgError(err, pgerrcode.UniqueViolation) {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

const userColumns = `u.id, u.username, COALESCE(u.name, ''), COALESCE(u.email, ''), u.password_hash,
	u.role, COALESCE(u.phone, ''), u.is_blocked, u.created_at, u.last_active, u.version`

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		WHERE u.email = $1`

	return p.getOne(ctx, query, email)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		WHERE u.id = $1`

	return p.getOne(ctx, query, id)
}

func (p *PostgresUserRepository) GetByToken(ctx context.Context, tokenHash []byte, tokenScope string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users u
		INNER JOIN tokens t ON t.user_id = u.id
		WHERE t.hash = $1 AND t.scope = $2 AND t.expiry > NOW()`

	return p.getOne(ctx, query, tokenHash, tokenScope)
}

func (p *PostgresUserRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	var role string

	err := p.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&role,
		&user.Phone,
		&user.IsBlocked,
		&user.CreatedAt,
		&user.LastActive,
		&user.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	user.Role = domain.Role(role)

	return &user, nil
}

func (p *PostgresUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `, COUNT(b.id)
		FROM users u
		LEFT JOIN bookings b ON b.username = u.username
		GROUP BY u.id
		ORDER BY u.created_at DESC, u.id DESC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		var user domain.User
		var role string

		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Name,
			&user.Email,
			&user.Password.Hash,
			&role,
			&user.Phone,
			&user.IsBlocked,
			&user.CreatedAt,
			&user.LastActive,
			&user.Version,
			&user.BookingCount,
		)
		if err != nil {
			return nil, err
		}

		user.Role = domain.Role(role)
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (p *PostgresUserRepository) UpdatePassword(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
		SET password_hash = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version`

	err := p.db.QueryRow(ctx, query, user.Password.Hash, user.ID, user.Version).Scan(&user.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

// IsBlocked reports false for usernames that have never been seen.
func (p *PostgresUserRepository) IsBlocked(ctx context.Context, username string) (bool, error) {
	var blocked bool

	err := p.db.QueryRow(ctx, `SELECT is_blocked FROM users WHERE username = $1`, username).Scan(&blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return blocked, nil
}

func (p *PostgresUserRepository) SetBlocked(ctx context.Context, id int, blocked bool) error {
	tag, err := p.db.Exec(ctx, `UPDATE users SET is_blocked = $1 WHERE id = $2`, blocked, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresUserRepository) Touch(ctx context.Context, username string) error {
	return touchUser(ctx, p.db, username)
}

// SyncFromBookings registers every username found in the ledger that has no
// directory entry yet.
func (p *PostgresUserRepository) SyncFromBookings(ctx context.Context) (int, error) {
	query := `INSERT INTO users (username, email, last_active)
		SELECT b.username, MAX(b.user_email), MAX(b.booking_time)
		FROM bookings b
		WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.username = b.username)
		GROUP BY b.username
		ON CONFLICT DO NOTHING`

	tag, err := p.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func touchUser(ctx context.Context, q dbtx, username string) error {
	query := `INSERT INTO users (username, last_active)
		VALUES ($1, NOW())
		ON CONFLICT (username) DO UPDATE SET last_active = NOW()`

	_, err := q.Exec(ctx, query, username)

	return err
}
