package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID scopes rows to one conversation.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// UserOwnedBy restricts to sessions owned by a user.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// VisibleOnly keeps named sessions; provisional ones stay hidden.
type VisibleOnly struct{}

func (s VisibleOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name IS NOT NULL")
}
