package payments

import (
	"errors"
	"time"
)

type Payment struct {
	ID            int64     `json:"id"`
	PaymentRef    string    `json:"payment_ref"`
	Comment       string    `json:"comment"`
	AmountPaid    float64   `json:"amount_paid"`
	AccountPaidTo string    `json:"account_paid_to"`
	PaymentDate   time.Time `json:"payment_date"`
	RentID        int64     `json:"rent_id"`
	TenantID      string    `json:"tenant_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ErrTenantMismatch is returned when a payment names a tenant other than
// the one holding the rent.
var ErrTenantMismatch = errors.New("tenant_id does not match the rent's tenant")

// CreatePaymentRequest leaves TenantID optional; it defaults to the tenant
// of the rent being paid.
type CreatePaymentRequest struct {
	PaymentRef    string    `json:"payment_ref" validate:"omitempty,max=100"`
	Comment       string    `json:"comment" validate:"omitempty,max=1000"`
	AmountPaid    float64   `json:"amount_paid" validate:"required,gt=0"`
	AccountPaidTo string    `json:"account_paid_to" validate:"omitempty,max=255"`
	PaymentDate   time.Time `json:"payment_date" validate:"required"`
	RentID        int64     `json:"rent_id" validate:"required,gt=0"`
	TenantID      string    `json:"tenant_id" validate:"omitempty,uuid"`
}

type UpdatePaymentRequest struct {
	PaymentRef    *string    `json:"payment_ref" validate:"omitempty,max=100"`
	Comment       *string    `json:"comment" validate:"omitempty,max=1000"`
	AmountPaid    *float64   `json:"amount_paid" validate:"omitempty,gt=0"`
	AccountPaidTo *string    `json:"account_paid_to" validate:"omitempty,max=255"`
	PaymentDate   *time.Time `json:"payment_date"`
}

type Filter struct {
	TenantID string
	RentID   int64
}

var SortColumns = []string{"created_at", "updated_at", "payment_date", "amount_paid"}

var searchColumns = []string{"payment_ref", "comment", "account_paid_to"}
