package entity

import (
	"time"

	"github.com/google/uuid"
)

// InviteCode is a single-use registration token minted by cmd/invite.
type InviteCode struct {
	Code      uuid.UUID
	UsedBy    *string
	CreatedAt time.Time
	UsedAt    *time.Time
}
