package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(50);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
