package payments

import (
	"context"

	"estate/internal/db"
	"estate/internal/params"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	List(ctx context.Context, q params.ListQuery, f Filter) ([]Payment, int, error)
	GetByID(ctx context.Context, id int64) (*Payment, error)
	// Create expects TenantID to be resolved already.
	Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	Update(ctx context.Context, id int64, req UpdatePaymentRequest) (*Payment, error)
	ReassignTenant(ctx context.Context, rentID int64, tenantID string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{db: q}
}

const columns = `id, payment_ref, comment, amount_paid, account_paid_to, payment_date, rent_id, tenant_id::text, created_at, updated_at`

func scan(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID, &p.PaymentRef, &p.Comment, &p.AmountPaid, &p.AccountPaidTo,
		&p.PaymentDate, &p.RentID, &p.TenantID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *Repository) List(ctx context.Context, q params.ListQuery, f Filter) ([]Payment, int, error) {
	var w params.Where
	w.Search(q.SearchWord, searchColumns...)
	w.Dates(q)
	if f.TenantID != "" {
		w.Add("tenant_id::text = " + w.Arg(f.TenantID))
	}
	if f.RentID > 0 {
		w.Add("rent_id = " + w.Arg(f.RentID))
	}

	where := w.SQL()
	countArgs := append([]any(nil), w.Args()...)
	page := w.OrderLimit(q)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	items, total, err := db.Page(ctx, r.db,
		`SELECT COUNT(*) FROM payments`+where, countArgs,
		`SELECT `+columns+` FROM payments`+where+page, w.Args(),
		func(rows pgx.Rows) (Payment, error) { return scan(rows) },
	)
	if err != nil {
		return nil, 0, db.Classify("list payments", err)
	}
	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	p, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		return nil, db.Classify("get payment", err)
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	query := `
		INSERT INTO payments (payment_ref, comment, amount_paid, account_paid_to, payment_date, rent_id, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7::uuid)
		RETURNING ` + columns

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	p, err := scan(r.db.QueryRow(ctx, query,
		req.PaymentRef, req.Comment, req.AmountPaid, req.AccountPaidTo, req.PaymentDate, req.RentID, req.TenantID,
	))
	if err != nil {
		return nil, db.Classify("create payment", err)
	}
	return &p, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (*Payment, error) {
	var set params.Set
	if req.PaymentRef != nil {
		set.Assign("payment_ref", *req.PaymentRef)
	}
	if req.Comment != nil {
		set.Assign("comment", *req.Comment)
	}
	if req.AmountPaid != nil {
		set.Assign("amount_paid", *req.AmountPaid)
	}
	if req.AccountPaidTo != nil {
		set.Assign("account_paid_to", *req.AccountPaidTo)
	}
	if req.PaymentDate != nil {
		set.Assign("payment_date", *req.PaymentDate)
	}

	if set.Empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.Update("payments", id, columns)

	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	p, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, db.Classify("update payment", err)
	}
	return &p, nil
}

// ReassignTenant moves every payment of rentID to tenantID and returns how
// many rows changed. Run it in the transaction that changed the rent.
func (r *Repository) ReassignTenant(ctx context.Context, rentID int64, tenantID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE payments SET tenant_id = $1::uuid, updated_at = NOW()
		WHERE rent_id = $2 AND tenant_id <> $1::uuid`, tenantID, rentID)
	if err != nil {
		return 0, db.Classify("reassign payments", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, db.QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return db.Classify("delete payment", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
