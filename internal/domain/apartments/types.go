package apartments

import "time"

// Apartment is a rentable unit inside a building. CostBy is the billing
// period the cost applies to ("month", "year").
type Apartment struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Cost            float64   `json:"cost"`
	CostBy          string    `json:"cost_by"`
	Address         string    `json:"address"`
	BuildingID      int64     `json:"building_id"`
	NumberOfRooms   int       `json:"number_of_rooms"`
	NumberOfPalours int       `json:"number_of_palours"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateApartmentRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Cost            float64 `json:"cost" validate:"gte=0"`
	CostBy          string  `json:"cost_by" validate:"required,oneof=day week month year"`
	Address         string  `json:"address" validate:"omitempty,max=500"`
	BuildingID      int64   `json:"building_id" validate:"required,gt=0"`
	NumberOfRooms   int     `json:"number_of_rooms" validate:"gte=0"`
	NumberOfPalours int     `json:"number_of_palours" validate:"gte=0"`
}

type UpdateApartmentRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Cost            *float64 `json:"cost" validate:"omitempty,gte=0"`
	CostBy          *string  `json:"cost_by" validate:"omitempty,oneof=day week month year"`
	Address         *string  `json:"address" validate:"omitempty,max=500"`
	BuildingID      *int64   `json:"building_id" validate:"omitempty,gt=0"`
	NumberOfRooms   *int     `json:"number_of_rooms" validate:"omitempty,gte=0"`
	NumberOfPalours *int     `json:"number_of_palours" validate:"omitempty,gte=0"`
}

type Filter struct {
	BuildingID int64
}

var SortColumns = []string{"created_at", "updated_at", "name", "cost", "number_of_rooms"}

var searchColumns = []string{"name", "address", "cost_by"}
