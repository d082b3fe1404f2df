package expenses

import "time"

type Expense struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	BuildingID  *int64    `json:"building_id"`
	ApartmentID *int64    `json:"apartment_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=1000"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	BuildingID  *int64  `json:"building_id" validate:"omitempty,gt=0"`
	ApartmentID *int64  `json:"apartment_id" validate:"omitempty,gt=0"`
}

type UpdateExpenseRequest struct {
	Description *string  `json:"description" validate:"omitempty,min=1,max=1000"`
	Amount      *float64 `json:"amount" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	BuildingID  *int64   `json:"building_id" validate:"omitempty,gt=0"`
	ApartmentID *int64   `json:"apartment_id" validate:"omitempty,gt=0"`
}

type Filter struct {
	BuildingID  int64
	ApartmentID int64
	Category    string
}

var SortColumns = []string{"created_at", "updated_at", "amount", "category"}

var searchColumns = []string{"description", "category"}
