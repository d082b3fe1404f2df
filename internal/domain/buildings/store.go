package buildings

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]Building, int, error)
	GetByID(ctx context.Context, id int64) (*Building, error)
	Create(ctx context.Context, req CreateBuildingRequest) (*Building, error)
	Update(ctx context.Context, id int64, req UpdateBuildingRequest) (*Building, error)
	SetImage(ctx context.Context, id int64, url string) (*Building, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const columns = `id, name, address, law_firm_id, manager_id::text, image_url, created_at, updated_at`

func scan(row pgx.Row) (Building, error) {
	var b Building
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.LawFirmID, &b.ManagerID, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]Building, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.LawFirmID > 0 {
		w.Add("law_firm_id = " + w.Arg(f.LawFirmID))
	}
	if f.ManagerID != "" {
		w.Add("manager_id::text = " + w.Arg(f.ManagerID))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM buildings`+where, countArgs,
		`SELECT `+columns+` FROM buildings`+where+page, w.Args(),
		func(rows pgx.Rows) (Building, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list buildings", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Building, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM buildings WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get building", err)
	}
	return &b, nil
}

func (r *Repository) Create(ctx context.Context, req CreateBuildingRequest) (*Building, error) {
	query := `
		INSERT INTO buildings (name, address, law_firm_id, manager_id)
		VALUES ($1, $2, $3, $4::uuid)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, query, req.Name, req.Address, req.LawFirmID, req.ManagerID))
	if err != nil {
		return nil, db.Classify("create building", err)
	}
	return &b, nil
}

// Update applies only the non-nil fields of req.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateBuildingRequest) (*Building, error) {
	var set params.Set
	if req.Name != nil {
		set.Assign("name", *req.Name)
	}
	if req.Address != nil {
		set.Assign("address", *req.Address)
	}
	if req.LawFirmID != nil {
		set.Assign("law_firm_id", *req.LawFirmID)
	}
	if req.ManagerID != nil {
		set.AssignCast("manager_id", *req.ManagerID, "uuid")
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("buildings", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update building", err)
	}
	return &b, nil
}

func (r *Repository) SetImage(ctx context.Context, id int64, url string) (*Building, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	b, err := scan(r.db.QueryRow(ctx,
		`UPDATE buildings SET image_url = $1, updated_at = NOW() WHERE id = $2 RETURNING `+columns, url, id))
	if err != nil {
		return nil, db.Classify("set building image", err)
	}
	return &b, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete building", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
