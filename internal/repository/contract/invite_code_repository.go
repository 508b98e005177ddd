package contract

import (
	"context"

	"tsai-chat-be/internal/entity"

	"github.com/google/uuid"
)

type InviteCodeRepository interface {
	Create(ctx context.Context, code *entity.InviteCode) error
	// FindUnused returns the invite code iff it exists and has not been
	// claimed, nil otherwise.
	FindUnused(ctx context.Context, code uuid.UUID) (*entity.InviteCode, error)
	MarkUsed(ctx context.Context, code uuid.UUID, username string) error
}
