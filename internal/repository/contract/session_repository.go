package contract

import (
	"context"

	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	// Exists reports whether a *visible* (named) session exists. Provisional
	// sessions do not accept uploads or knowledge writes.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateName(ctx context.Context, id uuid.UUID, userId uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
