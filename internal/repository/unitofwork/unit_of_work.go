package unitofwork

import (
	"context"

	"tsai-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	InviteCodeRepository() contract.InviteCodeRepository
	SessionRepository() contract.SessionRepository
	MessageRepository() contract.MessageRepository
	KnowledgeRepository() contract.KnowledgeRepository
	UploadFileRepository() contract.UploadFileRepository
}
