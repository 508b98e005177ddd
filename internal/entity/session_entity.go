package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one conversation thread. Name is nil for provisional sessions
// minted on first page visit; only named sessions are listed to the user.
type Session struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      *string
	CreatedAt time.Time
}

// IsVisible reports whether the session has been surfaced to the user.
func (s *Session) IsVisible() bool {
	return s.Name != nil
}
