package users

import (
	"context"
	"fmt"

	"estate/internal/auth"
	"estate/internal/db"
	"estate/internal/params"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]User, int, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id string) error
	UpsertAdmin(ctx context.Context, user *User) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

const userColumns = `id, email, full_name, username, phone, contact_address, state, lga, country, role, password, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.Username,
		&u.Phone,
		&u.ContactAddress,
		&u.State,
		&u.LGA,
		&u.Country,
		&u.Role,
		&u.Password.hash,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]User, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.Role != "" {
		w.Add("role = " + w.Arg(string(f.Role)))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM users`+where, countArgs,
		`SELECT `+userColumns+` FROM users`+where+page, w.Args(),
		func(rows pgx.Rows) (User, error) { return scanUser(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list users", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, db.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get user", err)
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, db.Classify("get user by email", err)
	}
	return &u, nil
}

// Create inserts user, assigning a new UUID when ID is empty.
func (r *Repository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = auth.RoleUser
	}

	query := `
		INSERT INTO users (id, email, full_name, username, phone, contact_address, state, lga, country, role, password, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.FullName, user.Username, user.Phone, user.ContactAddress,
		user.State, user.LGA, user.Country, string(user.Role), user.Password.hash, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return db.Classify("create user", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, db.ErrNotFound
	}

	var set params.Set
	if req.Email != nil {
		set.Assign("email", *req.Email)
	}
	if req.FullName != nil {
		set.Assign("full_name", *req.FullName)
	}
	if req.Username != nil {
		set.Assign("username", *req.Username)
	}
	if req.Phone != nil {
		set.Assign("phone", *req.Phone)
	}
	if req.ContactAddress != nil {
		set.Assign("contact_address", *req.ContactAddress)
	}
	if req.State != nil {
		set.Assign("state", *req.State)
	}
	if req.LGA != nil {
		set.Assign("lga", *req.LGA)
	}
	if req.Country != nil {
		set.Assign("country", *req.Country)
	}
	if req.Role != nil {
		role, err := auth.ParseRole(*req.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", db.ErrConstraint, err)
		}
		set.Assign("role", string(role))
	}
	if req.IsActive != nil {
		set.Assign("is_active", *req.IsActive)
	}
	if req.Password != nil {
		var pw password
		if err := pw.Set(*req.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		set.Assign("password", pw.hash)
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("users", id, userColumns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update user", err)
	}
	return &u, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return db.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// UpsertAdmin creates the bootstrap administrator or leaves an existing
// account with the same email untouched.
func (r *Repository) UpsertAdmin(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Role = auth.RoleAdmin
	user.IsActive = true

	query := `
		INSERT INTO users (id, email, full_name, username, phone, contact_address, state, lga, country, role, password, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.FullName, user.Username, user.Phone, user.ContactAddress,
		user.State, user.LGA, user.Country, string(user.Role), user.Password.hash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return db.Classify("upsert admin", err)
	}
	return nil
}
