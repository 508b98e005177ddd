package model

import (
	"time"

	"github.com/google/uuid"
)

type InviteCode struct {
	Code      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UsedBy    *string    `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UsedAt    *time.Time
}

func (InviteCode) TableName() string {
	return "invite_codes"
}
