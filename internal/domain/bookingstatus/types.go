package bookingstatus

import "time"

// BookingStatus is a named state an apartment booking can be in
// (e.g. "RESERVED", "OCCUPIED").
type BookingStatus struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,max=100"`
}

var SortColumns = []string{"created_at", "updated_at", "status"}
