package users

import (
	"time"

	"estate/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Username       string    `json:"username"`
	Phone          string    `json:"phone"`
	ContactAddress string    `json:"contact_address"`
	State          string    `json:"state"`
	LGA            string    `json:"lga"`
	Country        string    `json:"country"`
	Role           auth.Role `json:"role" swaggertype:"string"`
	Password       password  `json:"-"` // Hide password
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Password struct to store plain text and hash
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// CreateUserRequest is used both for self registration and admin creation.
type CreateUserRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	FullName       string `json:"full_name" validate:"required,max=120"`
	Username       string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	ContactAddress string `json:"contact_address" validate:"omitempty,max=255"`
	State          string `json:"state" validate:"omitempty,max=100"`
	LGA            string `json:"lga" validate:"omitempty,max=100"`
	Country        string `json:"country" validate:"omitempty,max=100"`
	Role           string `json:"role" validate:"omitempty,role"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateUserRequest only touches non-nil fields.
type UpdateUserRequest struct {
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	FullName       *string `json:"full_name" validate:"omitempty,max=120"`
	Username       *string `json:"username" validate:"omitempty,alphanum,min=3,max=50"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	ContactAddress *string `json:"contact_address" validate:"omitempty,max=255"`
	State          *string `json:"state" validate:"omitempty,max=100"`
	LGA            *string `json:"lga" validate:"omitempty,max=100"`
	Country        *string `json:"country" validate:"omitempty,max=100"`
	Role           *string `json:"role" validate:"omitempty,role"`
	IsActive       *bool   `json:"is_active"`
	Password       *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// Filter narrows List beyond the common ListQuery.
type Filter struct {
	Role auth.Role
}

// SortColumns are the columns ?sortBy= may name.
var SortColumns = []string{"created_at", "updated_at", "full_name", "email", "username", "role"}

var searchColumns = []string{"full_name", "email", "username", "phone", "state", "contact_address"}
