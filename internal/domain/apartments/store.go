package apartments

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]Apartment, int, error)
	GetByID(ctx context.Context, id int64) (*Apartment, error)
	Create(ctx context.Context, req CreateApartmentRequest) (*Apartment, error)
	Update(ctx context.Context, id int64, req UpdateApartmentRequest) (*Apartment, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const columns = `id, name, cost, cost_by, address, building_id, number_of_rooms, number_of_palours, created_at, updated_at`

func scan(row pgx.Row) (Apartment, error) {
	var a Apartment
	err := row.Scan(
		&a.ID, &a.Name, &a.Cost, &a.CostBy, &a.Address, &a.BuildingID,
		&a.NumberOfRooms, &a.NumberOfPalours, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]Apartment, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.BuildingID > 0 {
		w.Add("building_id = " + w.Arg(f.BuildingID))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM apartments`+where, countArgs,
		`SELECT `+columns+` FROM apartments`+where+page, w.Args(),
		func(rows pgx.Rows) (Apartment, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list apartments", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	a, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM apartments WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get apartment", err)
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, req CreateApartmentRequest) (*Apartment, error) {
	query := `
		INSERT INTO apartments (name, cost, cost_by, address, building_id, number_of_rooms, number_of_palours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	a, err := scan(r.db.QueryRow(ctx, query,
		req.Name, req.Cost, req.CostBy, req.Address, req.BuildingID, req.NumberOfRooms, req.NumberOfPalours,
	))
	if err != nil {
		return nil, db.Classify("create apartment", err)
	}
	return &a, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateApartmentRequest) (*Apartment, error) {
	var set params.Set
	if req.Name != nil {
		set.Assign("name", *req.Name)
	}
	if req.Cost != nil {
		set.Assign("cost", *req.Cost)
	}
	if req.CostBy != nil {
		set.Assign("cost_by", *req.CostBy)
	}
	if req.Address != nil {
		set.Assign("address", *req.Address)
	}
	if req.BuildingID != nil {
		set.Assign("building_id", *req.BuildingID)
	}
	if req.NumberOfRooms != nil {
		set.Assign("number_of_rooms", *req.NumberOfRooms)
	}
	if req.NumberOfPalours != nil {
		set.Assign("number_of_palours", *req.NumberOfPalours)
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("apartments", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	a, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update apartment", err)
	}
	return &a, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM apartments WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete apartment", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
