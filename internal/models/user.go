package models

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeLandlord UserType = "LANDLORD"
	UserTypeTenant   UserType = "TENANT"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	UserType     UserType  `json:"userType"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserProjection is the display-only snippet denormalized onto
// messages and documents. Only these fields are guaranteed present;
// nothing should reach for the full entity through it.
type UserProjection struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

func (u *User) Projection() *UserProjection {
	return &UserProjection{ID: u.ID, Name: u.Name, Email: u.Email}
}
