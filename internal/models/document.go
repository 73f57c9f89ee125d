package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypeLandlord DocumentType = "LANDLORD"
	DocumentTypeTenant   DocumentType = "TENANT"
)

type Document struct {
	ID        uuid.UUID    `json:"id"`
	LeaseID   uuid.UUID    `json:"leaseId"`
	AuthorID  uuid.UUID    `json:"authorId"`
	Name      string       `json:"name"`
	FileName  string       `json:"fileName"`
	FileType  string       `json:"fileType"`
	Type      DocumentType `json:"type"`
	IsDeleted bool         `json:"-"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	// URL is a temporary signed blob URL, only present on single-document
	// reads. Author is a display projection.
	URL    string          `json:"url,omitempty"`
	Author *UserProjection `json:"author,omitempty"`
}
