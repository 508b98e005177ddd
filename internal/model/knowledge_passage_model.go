package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgePassage struct {
	Id        int64           `gorm:"primaryKey;autoIncrement"`
	SessionId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`

	Session *Session `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (KnowledgePassage) TableName() string {
	return "knowledge_base"
}
