package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID          uuid.UUID `json:"id"`
	LandlordID  uuid.UUID `json:"landlordId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	ImageName   *string   `json:"imageName,omitempty"`
	ImageType   *string   `json:"imageType,omitempty"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// ImageURL is a temporary signed URL, filled on read when the
	// property has an uploaded image. Never persisted.
	ImageURL string `json:"imageUrl,omitempty"`
}
