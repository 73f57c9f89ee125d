package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side half of the auth boundary: the cookie
// only ever carries Session.ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
