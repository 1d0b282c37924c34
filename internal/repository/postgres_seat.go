package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) List(ctx context.Context, owner domain.SeatOwner) ([]domain.Seat, error) {
	table, column := seatTable(owner)

	query := fmt.Sprintf(`
		SELECT id, seat_number, status
		FROM %s
		WHERE %s = $1
	`, table, column)

	rows, err := p.db.Query(ctx, query, owner.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat
		var status string

		err = rows.Scan(&seat.ID, &seat.Number, &status)
		if err != nil {
			return nil, err
		}

		seat.Status = domain.SeatStatus(status)
		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		exists, err := ownerExists(ctx, p.db, owner)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrRecordNotFound
		}
	}

	slices.SortFunc(seats, func(a, b domain.Seat) int {
		return domain.CompareSeatNumbers(a.Number, b.Number)
	})

	return seats, nil
}

func (p *PostgresSeatRepository) Generate(
	ctx context.Context,
	owner domain.SeatOwner,
	specs []domain.RowSpec) (int, error) {

	numbers, err := domain.GenerateSeatNumbers(specs)
	if err != nil {
		return 0, err
	}

	return insertSeats(ctx, p.db, owner, numbers)
}

func (p *PostgresSeatRepository) SetStatus(
	ctx context.Context,
	owner domain.SeatOwner,
	seatNumbers []string,
	status domain.SeatStatus) (int, error) {

	updated, err := setSeatStatus(ctx, p.db, owner, seatNumbers, status)
	if err != nil {
		return 0, err
	}

	if updated == 0 {
		return 0, p.missingOwnerErr(ctx, owner)
	}

	return updated, nil
}

func (p *PostgresSeatRepository) ResetAll(ctx context.Context, owner domain.SeatOwner) (int, error) {
	table, column := seatTable(owner)

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = 'available'
		WHERE %s = $1 AND status <> 'available'
	`, table, column)

	tag, err := p.db.Exec(ctx, query, owner.ID)
	if err != nil {
		return 0, err
	}

	if tag.RowsAffected() == 0 {
		return 0, p.missingOwnerErr(ctx, owner)
	}

	return int(tag.RowsAffected()), nil
}

func (p *PostgresSeatRepository) missingOwnerErr(ctx context.Context, owner domain.SeatOwner) error {
	exists, err := ownerExists(ctx, p.db, owner)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrRecordNotFound
	}

	return nil
}

// seatTable maps an owner onto its seat table and owner column. Both values
// are constants and safe to splice into SQL.
func seatTable(owner domain.SeatOwner) (table, column string) {
	if owner.Kind == domain.OwnerShow {
		return "show_seats", "show_id"
	}

	return "seats", "movie_id"
}

func ownerExists(ctx context.Context, q dbtx, owner domain.SeatOwner) (bool, error) {
	table := "movies"
	if owner.Kind == domain.OwnerShow {
		table = "shows"
	}

	var exists bool

	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), owner.ID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// insertSeats adds every label not yet present for the owner and reports how
// many rows were new.
func insertSeats(ctx context.Context, q dbtx, owner domain.SeatOwner, numbers []string) (int, error) {
	if len(numbers) == 0 {
		return 0, nil
	}

	table, column := seatTable(owner)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, seat_number)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (%s, seat_number) DO NOTHING
	`, table, column, column)

	tag, err := q.Exec(ctx, query, owner.ID, numbers)
	if err != nil {
		if isPgError(err, pgerrcode.ForeignKeyViolation) {
			return 0, domain.ErrRecordNotFound
		}

		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

func setSeatStatus(
	ctx context.Context,
	q dbtx,
	owner domain.SeatOwner,
	numbers []string,
	status domain.SeatStatus) (int, error) {

	table, column := seatTable(owner)

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3
		WHERE %s = $1 AND seat_number = ANY($2)
	`, table, column)

	tag, err := q.Exec(ctx, query, owner.ID, numbers, string(status))
	if err != nil {
		return 0, err
	}

	return int(tag.RowsAffected()), nil
}

// lockSeats takes row locks on the requested seats in seat number order and
// returns their current status. Labels the owner does not have are absent
// from the result.
func lockSeats(
	ctx context.Context,
	q dbtx,
	owner domain.SeatOwner,
	numbers []string) (map[string]domain.SeatStatus, error) {

	table, column := seatTable(owner)

	query := fmt.Sprintf(`
		SELECT seat_number, status
		FROM %s
		WHERE %s = $1 AND seat_number = ANY($2)
		ORDER BY seat_number
		FOR UPDATE
	`, table, column)

	rows, err := q.Query(ctx, query, owner.ID, numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make(map[string]domain.SeatStatus, len(numbers))

	for rows.Next() {
		var number, status string

		err = rows.Scan(&number, &status)
		if err != nil {
			return nil, err
		}

		statuses[number] = domain.SeatStatus(status)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}
