package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/memory"
	"tsai-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadHarness struct {
	uow       *fakeUow
	publisher *fakePublisher
	jobRepo   *memory.JobRepository
	service   IUploadService
	userId    uuid.UUID
	sessionId uuid.UUID
}

func newUploadHarness(t *testing.T) *uploadHarness {
	t.Helper()

	uow := newFakeUow()
	publisher := &fakePublisher{}
	jobRepo := memory.NewJobRepository()

	userId := uuid.New()
	sessionId := uuid.New()
	name := "project"
	require.NoError(t, uow.sessions.Create(context.Background(), &entity.Session{
		Id: sessionId, UserId: userId, Name: &name,
	}))

	svc := NewUploadService(&fakeFactory{uow: uow}, publisher, jobRepo, t.TempDir(), nopLogger{})

	return &uploadHarness{
		uow:       uow,
		publisher: publisher,
		jobRepo:   jobRepo,
		service:   svc,
		userId:    userId,
		sessionId: sessionId,
	}
}

func TestUploadPersistsRecordAndQueuesJob(t *testing.T) {
	h := newUploadHarness(t)

	res, err := h.service.Upload(context.Background(), h.userId, h.sessionId, "paper.txt", []byte("contents"))
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "paper.txt", res.Filename)

	// File on disk.
	data, err := os.ReadFile(res.Filepath)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))

	// Record persisted before the job runs.
	require.Len(t, h.uow.files.files, 1)
	assert.Equal(t, "paper.txt", h.uow.files.files[0].Filename)

	// Job enqueued and trackable.
	require.Len(t, h.publisher.payloads, 1)
	var msg dto.IngestFileMessage
	require.NoError(t, json.Unmarshal(h.publisher.payloads[0], &msg))
	assert.Equal(t, h.sessionId, msg.SessionId)
	assert.Equal(t, res.Filepath, msg.FilePath)

	job, found := h.jobRepo.Get(msg.JobId)
	require.True(t, found)
	assert.Equal(t, store.JobStatusQueued, job.Status)
}

func TestUploadIsIdempotentPerFilename(t *testing.T) {
	h := newUploadHarness(t)

	_, err := h.service.Upload(context.Background(), h.userId, h.sessionId, "paper.txt", []byte("v1"))
	require.NoError(t, err)

	res, err := h.service.Upload(context.Background(), h.userId, h.sessionId, "paper.txt", []byte("v2"))
	require.NoError(t, err)
	assert.Contains(t, res.Message, "already uploaded")

	// No second record, no second job.
	assert.Len(t, h.uow.files.files, 1)
	assert.Len(t, h.publisher.payloads, 1)

	// The original bytes stay untouched.
	data, err := os.ReadFile(h.uow.files.files[0].Filepath)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestUploadRejectsProvisionalSession(t *testing.T) {
	h := newUploadHarness(t)

	provisional := uuid.New()
	require.NoError(t, h.uow.sessions.Create(context.Background(), &entity.Session{
		Id: provisional, UserId: h.userId, Name: nil,
	}))

	_, err := h.service.Upload(context.Background(), h.userId, provisional, "paper.txt", []byte("x"))
	assert.True(t, errors.Is(err, contract.ErrSessionNotFound))
	assert.Empty(t, h.publisher.payloads)
}

func TestUploadRejectsUnknownSession(t *testing.T) {
	h := newUploadHarness(t)

	_, err := h.service.Upload(context.Background(), h.userId, uuid.New(), "paper.txt", []byte("x"))
	assert.True(t, errors.Is(err, contract.ErrSessionNotFound))
}

func TestUploadStripsDirectoryFromFilename(t *testing.T) {
	h := newUploadHarness(t)

	res, err := h.service.Upload(context.Background(), h.userId, h.sessionId, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", res.Filename)
	assert.Equal(t, "passwd", filepath.Base(res.Filepath))
}

func TestUploadPublishFailureMarksJobFailed(t *testing.T) {
	h := newUploadHarness(t)
	h.publisher.err = errors.New("queue closed")

	_, err := h.service.Upload(context.Background(), h.userId, h.sessionId, "paper.txt", []byte("x"))
	require.Error(t, err)

	// The file record survives; only the job is dead.
	assert.Len(t, h.uow.files.files, 1)
}
