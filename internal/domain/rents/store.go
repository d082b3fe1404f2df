package rents

import (
	"context"
	"strings"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]Rent, int, error)
	GetByID(ctx context.Context, id int64) (*Rent, error)
	Lock(ctx context.Context, id int64) (*Rent, error)
	Create(ctx context.Context, req CreateRentRequest) (*Rent, error)
	Update(ctx context.Context, id int64, req UpdateRentRequest) (*Rent, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db db.Querier
}

// NewRepository accepts the pool or a transaction.
func NewRepository(q db.Querier) Store {
	return &Repository{db: q}
}

const columns = `id, start_date, end_date, total_amount, apartment_id, tenant_id::text, created_at, updated_at`

func scan(row pgx.Row) (Rent, error) {
	var r Rent
	err := row.Scan(&r.ID, &r.StartDate, &r.EndDate, &r.TotalAmount, &r.ApartmentID, &r.TenantID, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// classify maps the period check constraint onto ErrInvalidPeriod.
func classify(op string, err error) error {
	err = db.Classify(op, err)
	if strings.Contains(err.Error(), "rents_period_check") {
		return ErrInvalidPeriod
	}
	return err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]Rent, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.TenantID != "" {
		w.Add("tenant_id::text = " + w.Arg(f.TenantID))
	}
	if f.ApartmentID > 0 {
		w.Add("apartment_id = " + w.Arg(f.ApartmentID))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM rents`+where, countArgs,
		`SELECT `+columns+` FROM rents`+where+page, w.Args(),
		func(rows pgx.Rows) (Rent, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list rents", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Rent, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	rent, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM rents WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get rent", err)
	}
	return &rent, nil
}

// Lock reads the rent with FOR UPDATE; only meaningful inside a transaction.
func (r *Repository) Lock(ctx context.Context, id int64) (*Rent, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	rent, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM rents WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, db.Classify("lock rent", err)
	}
	return &rent, nil
}

func (r *Repository) Create(ctx context.Context, req CreateRentRequest) (*Rent, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidPeriod
	}

	query := `
		INSERT INTO rents (start_date, end_date, total_amount, apartment_id, tenant_id)
		VALUES ($1, $2, $3, $4, $5::uuid)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	rent, err := scan(r.db.QueryRow(ctx, query,
		req.StartDate, req.EndDate, req.TotalAmount, req.ApartmentID, req.TenantID,
	))
	if err != nil {
		return nil, classify("create rent", err)
	}
	return &rent, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateRentRequest) (*Rent, error) {
	if err := req.Period(); err != nil {
		return nil, err
	}

	set := updateSet(req)
	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("rents", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	rent, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify("update rent", err)
	}
	return &rent, nil
}

func updateSet(req UpdateRentRequest) params.Set {
	var set params.Set
	if req.StartDate != nil {
		set.Assign("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		set.Assign("end_date", *req.EndDate)
	}
	if req.TotalAmount != nil {
		set.Assign("total_amount", *req.TotalAmount)
	}
	if req.ApartmentID != nil {
		set.Assign("apartment_id", *req.ApartmentID)
	}
	if req.TenantID != nil {
		set.AssignCast("tenant_id", *req.TenantID, "uuid")
	}
	return set
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM rents WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete rent", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
