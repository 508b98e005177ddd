package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tsai-chat-be/internal/constant"
	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatHarness struct {
	uow      *fakeUow
	embedder *fakeEmbedder
	search   *fakeSearch
	chat     *fakeChat
	service  IChatService
	userId   uuid.UUID
	session  *entity.Session
}

func newChatHarness(t *testing.T) *chatHarness {
	t.Helper()

	uow := newFakeUow()
	factory := &fakeFactory{uow: uow}
	embedder := &fakeEmbedder{}
	search := &fakeSearch{}
	chat := &fakeChat{answer: "generated reply"}

	userId := uuid.New()
	name := "research"
	session := &entity.Session{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      &name,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.sessions.Create(context.Background(), session))

	retriever := rag.NewRetriever(factory, embedder, nopLogger{})
	svc := NewChatService(factory, retriever, search, chat, embedder, nopLogger{}, 4, 10)

	return &chatHarness{
		uow:      uow,
		embedder: embedder,
		search:   search,
		chat:     chat,
		service:  svc,
		userId:   userId,
		session:  session,
	}
}

func (h *chatHarness) send(t *testing.T, msg string) (*dto.SendChatResponse, error) {
	t.Helper()
	return h.service.SendChat(context.Background(), h.userId, &dto.SendChatRequest{
		SessionId: h.session.Id,
		Message:   msg,
	})
}

func TestSendChatPersistsBothMessages(t *testing.T) {
	h := newChatHarness(t)

	res, err := h.send(t, "what is pgvector?")
	require.NoError(t, err)
	assert.Equal(t, "generated reply", res.Answer)

	msgs := h.uow.messages.msgs
	require.Len(t, msgs, 2)
	assert.Equal(t, constant.MessageRoleUser, msgs[0].Role)
	assert.Equal(t, "what is pgvector?", msgs[0].Content)
	assert.Equal(t, constant.MessageRoleAssistant, msgs[1].Role)
	assert.Equal(t, "generated reply", msgs[1].Content)
}

func TestSendChatPromptContainsAllSections(t *testing.T) {
	h := newChatHarness(t)
	h.search.digest = "Title: pgvector\nSnippet: vectors in postgres\nLink: x"

	// Prior turn plus a stored passage.
	h.uow.messages.Create(context.Background(), &entity.Message{
		SessionId: h.session.Id, Role: constant.MessageRoleUser, Content: "earlier question",
	})
	h.uow.messages.Create(context.Background(), &entity.Message{
		SessionId: h.session.Id, Role: constant.MessageRoleAssistant, Content: "earlier answer",
	})
	h.uow.knowledge.Create(context.Background(), &entity.KnowledgePassage{
		SessionId: h.session.Id, Content: "stored document chunk", Embedding: []float32{1, 2, 3},
	})

	_, err := h.send(t, "follow-up")
	require.NoError(t, err)

	prompt := h.chat.gotPrompt
	assert.Contains(t, prompt, "user: earlier question")
	assert.Contains(t, prompt, "assistant: earlier answer")
	assert.Contains(t, prompt, "stored document chunk")
	assert.Contains(t, prompt, "Title: pgvector")
	assert.True(t, strings.HasSuffix(prompt, "User: follow-up\nAI:"))
}

func TestSendChatHistoryExcludesCurrentMessage(t *testing.T) {
	h := newChatHarness(t)

	_, err := h.send(t, "only message")
	require.NoError(t, err)

	// The new message appears once, as the trailing "User:" line, never as a
	// history entry.
	assert.Equal(t, 1, strings.Count(h.chat.gotPrompt, "only message"))
	assert.NotContains(t, h.chat.gotPrompt, "user: only message")
}

func TestSendChatCapturesWebDigest(t *testing.T) {
	h := newChatHarness(t)
	h.search.digest = "Title: fresh\nSnippet: news\nLink: y"

	_, err := h.send(t, "anything new?")
	require.NoError(t, err)

	passages := h.uow.knowledge.passages
	require.Len(t, passages, 1)
	assert.Equal(t, h.search.digest, passages[0].Content)
	assert.Equal(t, h.session.Id, passages[0].SessionId)

	// Captured after assembly: the digest is present as web context, not as a
	// retrieved passage.
	assert.Equal(t, 1, strings.Count(h.chat.gotPrompt, "Title: fresh"))
}

func TestSendChatEmptyDigestSkipsCapture(t *testing.T) {
	h := newChatHarness(t)
	h.search.digest = ""

	_, err := h.send(t, "hello")
	require.NoError(t, err)
	assert.Empty(t, h.uow.knowledge.passages)
}

func TestSendChatSearchFailureDegrades(t *testing.T) {
	h := newChatHarness(t)
	h.search.err = fmt.Errorf("search quota exceeded")

	res, err := h.send(t, "hello")
	require.NoError(t, err)
	assert.Equal(t, "generated reply", res.Answer)
	assert.Empty(t, h.uow.knowledge.passages)
}

func TestSendChatEmbeddingFailureDegrades(t *testing.T) {
	h := newChatHarness(t)
	h.embedder.failAll = true
	h.uow.knowledge.Create(context.Background(), &entity.KnowledgePassage{
		SessionId: h.session.Id, Content: "unreachable passage", Embedding: []float32{1},
	})

	res, err := h.send(t, "hello")
	require.NoError(t, err)
	assert.Equal(t, "generated reply", res.Answer)
	assert.NotContains(t, h.chat.gotPrompt, "unreachable passage")
}

func TestSendChatCaptureFailureNeverSurfaces(t *testing.T) {
	h := newChatHarness(t)
	h.search.digest = "Title: d\nSnippet: s\nLink: l"
	h.uow.knowledge.createErr = fmt.Errorf("insert refused")

	res, err := h.send(t, "hello")
	require.NoError(t, err)
	assert.Equal(t, "generated reply", res.Answer)
}

func TestSendChatGenerationFailureAbortsTurn(t *testing.T) {
	h := newChatHarness(t)
	h.chat.err = fmt.Errorf("model overloaded")

	_, err := h.send(t, "doomed question")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))

	// User message is already durable; the reply never lands.
	msgs := h.uow.messages.msgs
	require.Len(t, msgs, 1)
	assert.Equal(t, constant.MessageRoleUser, msgs[0].Role)
}

func TestSendChatUnknownSessionRejected(t *testing.T) {
	h := newChatHarness(t)

	_, err := h.service.SendChat(context.Background(), h.userId, &dto.SendChatRequest{
		SessionId: uuid.New(),
		Message:   "hello",
	})
	assert.True(t, errors.Is(err, contract.ErrSessionNotFound))
	assert.Empty(t, h.uow.messages.msgs)
}

func TestSendChatForeignSessionRejected(t *testing.T) {
	h := newChatHarness(t)

	_, err := h.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		SessionId: h.session.Id,
		Message:   "hello",
	})
	assert.True(t, errors.Is(err, contract.ErrSessionNotFound))
}

func TestSendChatRetrievalScopedToSession(t *testing.T) {
	h := newChatHarness(t)

	otherName := "other"
	other := &entity.Session{Id: uuid.New(), UserId: h.userId, Name: &otherName}
	require.NoError(t, h.uow.sessions.Create(context.Background(), other))
	h.uow.knowledge.Create(context.Background(), &entity.KnowledgePassage{
		SessionId: other.Id, Content: "foreign passage", Embedding: []float32{1},
	})

	_, err := h.send(t, "hello")
	require.NoError(t, err)
	assert.NotContains(t, h.chat.gotPrompt, "foreign passage")
}
