package models

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID        uuid.UUID `json:"id"`
	LeaseID   uuid.UUID `json:"leaseId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
