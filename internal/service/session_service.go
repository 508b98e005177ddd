package service

import (
	"context"
	"time"

	"tsai-chat-be/internal/constant"
	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/specification"
	"tsai-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	// Open resolves the session a page visit lands on. An unknown or absent
	// id mints a fresh provisional session so the first message has a home.
	Open(ctx context.Context, userId uuid.UUID, requested uuid.UUID) (*dto.OpenSessionResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error
	Delete(ctx context.Context, userId uuid.UUID, req *dto.DeleteSessionRequest) error
	ListVisible(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) ([]*dto.MessageResponse, error)
	GetFiles(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) ([]*dto.UploadFileResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
	}
}

func (s *sessionService) Open(ctx context.Context, userId uuid.UUID, requested uuid.UUID) (*dto.OpenSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if requested != uuid.Nil {
		session, err := uow.SessionRepository().FindOne(ctx,
			specification.ByID{ID: requested},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if session != nil {
			return &dto.OpenSessionResponse{
				SessionId:     session.Id,
				SessionExists: true,
			}, nil
		}
	}

	session := &entity.Session{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      nil, // provisional until the user names it
		CreatedAt: time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.OpenSessionResponse{
		SessionId:     session.Id,
		SessionExists: false,
	}, nil
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	name := req.Name
	if name == "" {
		name = constant.DefaultSessionName
	}

	session := &entity.Session{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      &name,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id:   session.Id,
		Name: name,
	}, nil
}

func (s *sessionService) Rename(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwned(ctx, uow, userId, req.SessionId)
	if err != nil {
		return err
	}

	return uow.SessionRepository().UpdateName(ctx, session.Id, userId, req.Name)
}

// Delete removes the session and everything scoped to it in one transaction.
func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, req *dto.DeleteSessionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwned(ctx, uow, userId, req.SessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.KnowledgeRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.UploadFileRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *sessionService) ListVisible(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.VisibleOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, &dto.SessionResponse{
			Id:        session.Id,
			Name:      *session.Name,
			CreatedAt: session.CreatedAt,
		})
	}
	return res, nil
}

func (s *sessionService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwned(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindRecentBySessionId(ctx, session.Id, limit)
	if err != nil {
		return nil, err
	}

	// Newest-first window, replayed in chronological order.
	res := make([]*dto.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		res = append(res, &dto.MessageResponse{
			Role:    messages[i].Role,
			Content: messages[i].Content,
		})
	}
	return res, nil
}

func (s *sessionService) GetFiles(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, limit int) ([]*dto.UploadFileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwned(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	files, err := uow.UploadFileRepository().FindAllBySessionId(ctx, session.Id, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UploadFileResponse, 0, len(files))
	for i := len(files) - 1; i >= 0; i-- {
		res = append(res, &dto.UploadFileResponse{
			Filename: files[i].Filename,
			Filepath: files[i].Filepath,
		})
	}
	return res, nil
}

func (s *sessionService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, contract.ErrSessionNotFound
	}
	return session, nil
}
