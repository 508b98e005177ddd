package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tsai-chat-be/internal/constant"
	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/pkg/logger"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/specification"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/chatbot"
	"tsai-chat-be/pkg/embedding"
	"tsai-chat-be/pkg/rag"
	"tsai-chat-be/pkg/rag/prompt"
	"tsai-chat-be/pkg/websearch"

	"github.com/google/uuid"
)

// ErrGenerationFailed marks a turn aborted at the generation call. The user
// message is already persisted by then; the reply simply never arrives.
var ErrGenerationFailed = errors.New("answer generation failed")

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

// chatService runs one conversation turn, strictly sequential:
//
//	persist user message -> load history -> retrieve -> web lookup ->
//	assemble prompt -> capture web digest -> generate -> persist reply
//
// Persisting before retrieval keeps a message from polluting its own
// retrieval; capturing after assembly keeps the fresh digest out of the same
// turn's context. Retrieval, web lookup and capture are best-effort; the
// message writes and the generation call are not.
type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	retriever         *rag.Retriever
	searchProvider    websearch.SearchProvider
	chatProvider      chatbot.ChatProvider
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
	topK              int
	maxHistoryTurns   int
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	retriever *rag.Retriever,
	searchProvider websearch.SearchProvider,
	chatProvider chatbot.ChatProvider,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
	topK int,
	maxHistoryTurns int,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		retriever:         retriever,
		searchProvider:    searchProvider,
		chatProvider:      chatProvider,
		embeddingProvider: embeddingProvider,
		log:               log,
		topK:              topK,
		maxHistoryTurns:   maxHistoryTurns,
	}
}

func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: req.SessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, contract.ErrSessionNotFound
	}

	userMsg := &entity.Message{
		SessionId: session.Id,
		Role:      constant.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, uow, session.Id, userMsg.Id)
	if err != nil {
		return nil, err
	}

	passages := s.retriever.Retrieve(ctx, session.Id, req.Message, s.topK)

	digest, err := s.searchProvider.Search(ctx, req.Message)
	if err != nil {
		s.log.Warn("chat", "Web search failed, continuing without digest", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		digest = ""
	}

	promptText := prompt.NewBuilder(history, passages, digest, req.Message).Build()

	if digest != "" {
		s.captureDigest(ctx, uow, session.Id, digest)
	}

	answer, err := s.chatProvider.Generate(ctx, promptText)
	if err != nil {
		s.log.Error("chat", "Generation call failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	assistantMsg := &entity.Message{
		SessionId: session.Id,
		Role:      constant.MessageRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{Answer: answer}, nil
}

// loadHistory returns the last turns in chronological order, excluding the
// message persisted this turn: the prompt carries that one separately.
func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, currentMsgId int64) ([]prompt.HistoryEntry, error) {
	messages, err := uow.MessageRepository().FindRecentBySessionId(ctx, sessionId, s.maxHistoryTurns+1)
	if err != nil {
		return nil, err
	}

	history := make([]prompt.HistoryEntry, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Id == currentMsgId {
			continue
		}
		history = append(history, prompt.HistoryEntry{
			Role:    messages[i].Role,
			Content: messages[i].Content,
		})
	}
	if len(history) > s.maxHistoryTurns {
		history = history[len(history)-s.maxHistoryTurns:]
	}
	return history, nil
}

// captureDigest stores the web digest as a knowledge passage so later turns
// can retrieve it. Best-effort; a session deleted underneath us is benign.
func (s *chatService) captureDigest(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, digest string) {
	res, err := s.embeddingProvider.Generate(digest, "RETRIEVAL_DOCUMENT")
	if err != nil {
		s.log.Warn("chat", "Failed to embed web digest, skipping capture", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return
	}

	passage := &entity.KnowledgePassage{
		SessionId: sessionId,
		Content:   digest,
		Embedding: res.Embedding.Values,
		CreatedAt: time.Now(),
	}
	if err := uow.KnowledgeRepository().Create(ctx, passage); err != nil {
		if errors.Is(err, contract.ErrSessionNotFound) {
			s.log.Info("chat", "Session deleted before digest capture, discarding", map[string]interface{}{
				"session_id": sessionId.String(),
			})
			return
		}
		s.log.Warn("chat", "Failed to store web digest", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
}
