package lawfirms

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery) ([]LawFirm, int, error)
	GetByID(ctx context.Context, id int64) (*LawFirm, error)
	Create(ctx context.Context, req CreateLawFirmRequest) (*LawFirm, error)
	Update(ctx context.Context, id int64, req UpdateLawFirmRequest) (*LawFirm, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const columns = `id, name, email, phone, address, created_at, updated_at`

func scan(row pgx.Row) (LawFirm, error) {
	var f LawFirm
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Phone, &f.Address, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery) ([]LawFirm, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM law_firms`+where, countArgs,
		`SELECT `+columns+` FROM law_firms`+where+page, w.Args(),
		func(rows pgx.Rows) (LawFirm, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list law firms", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*LawFirm, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	f, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM law_firms WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get law firm", err)
	}
	return &f, nil
}

func (r *Repository) Create(ctx context.Context, req CreateLawFirmRequest) (*LawFirm, error) {
	query := `
		INSERT INTO law_firms (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	f, err := scan(r.db.QueryRow(ctx, query, req.Name, req.Email, req.Phone, req.Address))
	if err != nil {
		return nil, db.Classify("create law firm", err)
	}
	return &f, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateLawFirmRequest) (*LawFirm, error) {
	var set params.Set
	if req.Name != nil {
		set.Assign("name", *req.Name)
	}
	if req.Email != nil {
		set.Assign("email", *req.Email)
	}
	if req.Phone != nil {
		set.Assign("phone", *req.Phone)
	}
	if req.Address != nil {
		set.Assign("address", *req.Address)
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("law_firms", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	f, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update law firm", err)
	}
	return &f, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM law_firms WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete law firm", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
