package storage

import (
	"context"
	"errors"
	"fmt"

	"estate/internal/db"
	"estate/internal/domain/apartments"
	"estate/internal/domain/bookingstatus"
	"estate/internal/domain/buildings"
	"estate/internal/domain/expenses"
	"estate/internal/domain/lawfirms"
	"estate/internal/domain/payments"
	"estate/internal/domain/rents"
	"estate/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool          *pgxpool.Pool // required by WithLedgerTx
	Users         users.Store
	LawFirms      lawfirms.Store
	Buildings     buildings.Store
	Apartments    apartments.Store
	Rents         rents.Store
	Payments      payments.Store
	Expenses      expenses.Store
	BookingStatus bookingstatus.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:          db,
		Users:         users.NewRepository(db),
		LawFirms:      lawfirms.NewRepository(db),
		Buildings:     buildings.NewRepository(db),
		Apartments:    apartments.NewRepository(db),
		Rents:         rents.NewRepository(db),
		Payments:      payments.NewRepository(db),
		Expenses:      expenses.NewRepository(db),
		BookingStatus: bookingstatus.NewRepository(db),
	}
}

// LedgerTx is a tx-scoped set of repos for rents and their payments.
type LedgerTx struct {
	Rents    rents.Store
	Payments payments.Store
}

// WithLedgerTx runs fn atomically. fn's error rolls the transaction back.
func (c *Container) WithLedgerTx(ctx context.Context, fn func(s *LedgerTx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	s := &LedgerTx{
		Rents:    rents.NewRepository(tx),
		Payments: payments.NewRepository(tx),
	}

	if err := fn(s); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RecordPayment locks the rent being paid, defaults the payment's tenant to
// the rent's tenant and inserts the payment in one transaction.
func (c *Container) RecordPayment(ctx context.Context, req payments.CreatePaymentRequest) (*payments.Payment, error) {
	var created *payments.Payment

	err := c.WithLedgerTx(ctx, func(s *LedgerTx) error {
		p, err := recordPayment(ctx, s, req)
		created = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func recordPayment(ctx context.Context, s *LedgerTx, req payments.CreatePaymentRequest) (*payments.Payment, error) {
	rent, err := s.Rents.Lock(ctx, req.RentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: rent %d", db.ErrInvalidReference, req.RentID)
		}
		return nil, err
	}

	switch req.TenantID {
	case "":
		req.TenantID = rent.TenantID
	case rent.TenantID:
	default:
		return nil, payments.ErrTenantMismatch
	}

	return s.Payments.Create(ctx, req)
}

// UpdateRent applies req to a rent. When the tenant changes, the payments
// already recorded against the rent move to the new tenant in the same
// transaction, so a payment's tenant always matches its rent's.
func (c *Container) UpdateRent(ctx context.Context, id int64, req rents.UpdateRentRequest) (*rents.Rent, error) {
	if req.TenantID == nil {
		return c.Rents.Update(ctx, id, req)
	}

	var updated *rents.Rent
	err := c.WithLedgerTx(ctx, func(s *LedgerTx) error {
		r, err := updateRent(ctx, s, id, req)
		updated = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func updateRent(ctx context.Context, s *LedgerTx, id int64, req rents.UpdateRentRequest) (*rents.Rent, error) {
	current, err := s.Rents.Lock(ctx, id)
	if err != nil {
		return nil, err
	}

	rent, err := s.Rents.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if rent.TenantID != current.TenantID {
		if _, err := s.Payments.ReassignTenant(ctx, id, rent.TenantID); err != nil {
			return nil, err
		}
	}
	return rent, nil
}
