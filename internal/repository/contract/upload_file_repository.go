package contract

import (
	"context"

	"tsai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type UploadFileRepository interface {
	Create(ctx context.Context, file *entity.UploadFile) error
	// ExistsByFilename backs the idempotent re-upload check: one record per
	// distinct filename per session.
	ExistsByFilename(ctx context.Context, sessionId uuid.UUID, filename string) (bool, error)
	FindAllBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.UploadFile, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
