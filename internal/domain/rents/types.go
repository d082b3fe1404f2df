package rents

import (
	"errors"
	"time"
)

// Rent is a tenancy of one apartment over [StartDate, EndDate).
type Rent struct {
	ID          int64     `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TotalAmount float64   `json:"total_amount"`
	ApartmentID int64     `json:"apartment_id"`
	TenantID    string    `json:"tenant_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrInvalidPeriod = errors.New("end_date must be after start_date")

type CreateRentRequest struct {
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	TotalAmount float64   `json:"total_amount" validate:"gte=0"`
	ApartmentID int64     `json:"apartment_id" validate:"required,gt=0"`
	TenantID    string    `json:"tenant_id" validate:"required,uuid"`
}

type UpdateRentRequest struct {
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	TotalAmount *float64   `json:"total_amount" validate:"omitempty,gte=0"`
	ApartmentID *int64     `json:"apartment_id" validate:"omitempty,gt=0"`
	TenantID    *string    `json:"tenant_id" validate:"omitempty,uuid"`
}

// Period reports whether the requested dates are consistent on their own.
// A one-sided update is checked against the stored row by the database.
func (r UpdateRentRequest) Period() error {
	if r.StartDate != nil && r.EndDate != nil && !r.EndDate.After(*r.StartDate) {
		return ErrInvalidPeriod
	}
	return nil
}

type Filter struct {
	TenantID    string
	ApartmentID int64
}

var SortColumns = []string{"created_at", "updated_at", "start_date", "end_date", "total_amount"}

var searchColumns = []string{"total_amount", "start_date", "end_date"}
