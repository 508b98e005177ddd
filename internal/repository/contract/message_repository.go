package contract

import (
	"context"

	"tsai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindRecentBySessionId returns up to 'limit' messages, newest first.
	// Callers reverse the slice to get chronological order.
	FindRecentBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.Message, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
