package buildings

import "time"

type Building struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	LawFirmID *int64    `json:"law_firm_id"`
	ManagerID *string   `json:"manager_id"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateBuildingRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Address   string  `json:"address" validate:"required,max=500"`
	LawFirmID *int64  `json:"law_firm_id" validate:"omitempty,gt=0"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

type UpdateBuildingRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address   *string `json:"address" validate:"omitempty,min=1,max=500"`
	LawFirmID *int64  `json:"law_firm_id" validate:"omitempty,gt=0"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

type Filter struct {
	LawFirmID int64
	ManagerID string
}

var SortColumns = []string{"created_at", "updated_at", "name", "address"}

var searchColumns = []string{"name", "address"}
