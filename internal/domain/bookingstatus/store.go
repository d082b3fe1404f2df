package bookingstatus

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery) ([]BookingStatus, int, error)
	GetByID(ctx context.Context, id int64) (*BookingStatus, error)
	Create(ctx context.Context, status string) (*BookingStatus, error)
	Update(ctx context.Context, id int64, status string) (*BookingStatus, error)
	Delete(ctx context.Context, id int64) (*BookingStatus, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const columns = `id, status, created_at, updated_at`

func scan(row pgx.Row) (BookingStatus, error) {
	var b BookingStatus
	err := row.Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery) ([]BookingStatus, int, error) {
	var w params.Where
	w.Search(q.SearchWord, "status")
	w.Dates(q)

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM booking_statuses`+where, countArgs,
		`SELECT `+columns+` FROM booking_statuses`+where+page, w.Args(),
		func(rows pgx.Rows) (BookingStatus, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list booking statuses", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*BookingStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM booking_statuses WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get booking status", err)
	}
	return &b, nil
}

func (r *Repository) Create(ctx context.Context, status string) (*BookingStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, `INSERT INTO booking_statuses (status) VALUES ($1) RETURNING `+columns, status))
	if err != nil {
		return nil, db.Classify("create booking status", err)
	}
	return &b, nil
}

func (r *Repository) Update(ctx context.Context, id int64, status string) (*BookingStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx,
		`UPDATE booking_statuses SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING `+columns, status, id))
	if err != nil {
		return nil, db.Classify("update booking status", err)
	}
	return &b, nil
}

// Delete returns the removed row.
func (r *Repository) Delete(ctx context.Context, id int64) (*BookingStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, `DELETE FROM booking_statuses WHERE id = $1 RETURNING `+columns, id))
	if err != nil {
		return nil, db.Classify("delete booking status", err)
	}
	return &b, nil
}
