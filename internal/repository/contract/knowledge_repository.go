package contract

import (
	"context"

	"tsai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	// Create inserts one passage. Fails with ErrSessionNotFound when the
	// owning session has been deleted.
	Create(ctx context.Context, passage *entity.KnowledgePassage) error
	// SearchSimilar returns up to 'limit' passages of one session, nearest
	// first by Euclidean distance, ties broken by insertion order.
	SearchSimilar(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*entity.KnowledgePassage, error)
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
