package entity

import "github.com/google/uuid"

// Session identifies the authenticated user on whose behalf an operation runs.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// NewSession creates a Session for the given user.
func NewSession(userID uuid.UUID, email string) Session {
	return Session{UserID: userID, Email: email}
}
