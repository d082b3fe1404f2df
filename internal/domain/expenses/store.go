package expenses

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]Expense, int, error)
	GetByID(ctx context.Context, id int64) (*Expense, error)
	Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error)
	Update(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const columns = `id, description, amount, category, building_id, apartment_id, created_at, updated_at`

func scan(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.BuildingID, &e.ApartmentID, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]Expense, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.BuildingID > 0 {
		w.Add("building_id = " + w.Arg(f.BuildingID))
	}
	if f.ApartmentID > 0 {
		w.Add("apartment_id = " + w.Arg(f.ApartmentID))
	}
	if f.Category != "" {
		w.Add("category = " + w.Arg(f.Category))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM expenses`+where, countArgs,
		`SELECT `+columns+` FROM expenses`+where+page, w.Args(),
		func(rows pgx.Rows) (Expense, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list expenses", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	e, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get expense", err)
	}
	return &e, nil
}

func (r *Repository) Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	query := `
		INSERT INTO expenses (description, amount, category, building_id, apartment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	e, err := scan(r.db.QueryRow(ctx, query, req.Description, req.Amount, req.Category, req.BuildingID, req.ApartmentID))
	if err != nil {
		return nil, db.Classify("create expense", err)
	}
	return &e, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error) {
	var set params.Set
	if req.Description != nil {
		set.Assign("description", *req.Description)
	}
	if req.Amount != nil {
		set.Assign("amount", *req.Amount)
	}
	if req.Category != nil {
		set.Assign("category", *req.Category)
	}
	if req.BuildingID != nil {
		set.Assign("building_id", *req.BuildingID)
	}
	if req.ApartmentID != nil {
		set.Assign("apartment_id", *req.ApartmentID)
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("expenses", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	e, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update expense", err)
	}
	return &e, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
