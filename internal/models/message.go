package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is soft-deleted: read paths filter IsDeleted server-side,
// clients never see a deleted row.
type Message struct {
	ID          uuid.UUID `json:"id"`
	Message     string    `json:"message"`
	AuthorID    uuid.UUID `json:"authorId"`
	RecipientID uuid.UUID `json:"recipientId"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Author    *UserProjection `json:"author,omitempty"`
	Recipient *UserProjection `json:"recipient,omitempty"`
}

// MessageChannel is a derived conversation summary, one per
// counterparty the user has exchanged messages with. Not stored.
type MessageChannel struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastMessaged time.Time `json:"lastMessaged"`
}
