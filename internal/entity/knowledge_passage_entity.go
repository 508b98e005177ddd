package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgePassage is a stored text chunk with its embedding, scoped to one
// session. Written by document ingestion and opportunistic web capture only.
type KnowledgePassage struct {
	Id        int64
	SessionId uuid.UUID
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
