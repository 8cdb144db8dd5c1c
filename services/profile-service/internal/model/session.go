package model

import (
	"time"
)

// Session represents an authenticated client session. It only points at the
// profile; the profile itself is loaded on demand.
type Session struct {
	ID        string    `json:"id"         bson:"_id"`
	ProfileID string    `json:"profile_id" bson:"profile_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
