package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/pkg/logger"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/memory"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/store"

	"github.com/google/uuid"
)

type IUploadService interface {
	// Upload persists the file and its record synchronously, then enqueues a
	// detached ingestion job. The response never waits for ingestion.
	Upload(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadResponse, error)
}

type uploadService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	jobRepo          *memory.JobRepository
	uploadDir        string
	log              logger.ILogger
}

func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	jobRepo *memory.JobRepository,
	uploadDir string,
	log logger.ILogger,
) IUploadService {
	return &uploadService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		jobRepo:          jobRepo,
		uploadDir:        uploadDir,
		log:              log,
	}
}

func (s *uploadService) Upload(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, filename string, data []byte) (*dto.UploadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Only named sessions accept uploads; provisional ones have not been
	// surfaced to the user yet.
	visible, err := uow.SessionRepository().Exists(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, contract.ErrSessionNotFound
	}

	filename = filepath.Base(filename)

	// Idempotent re-upload: one record per filename per session.
	exists, err := uow.UploadFileRepository().ExistsByFilename(ctx, sessionId, filename)
	if err != nil {
		return nil, err
	}
	if exists {
		return &dto.UploadResponse{
			Status:   "success",
			Message:  fmt.Sprintf("%s already uploaded, skipping", filename),
			Filename: filename,
		}, nil
	}

	dir := filepath.Join(s.uploadDir, userId.String(), sessionId.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, err
	}

	// The record lands before the job starts, so the file stays visible even
	// if ingestion later fails.
	record := &entity.UploadFile{
		SessionId: sessionId,
		Filename:  filename,
		Filepath:  filePath,
		CreatedAt: time.Now(),
	}
	if err := uow.UploadFileRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	job := &store.IngestionJob{
		ID:        uuid.NewString(),
		SessionID: sessionId.String(),
		Filename:  filename,
		FilePath:  filePath,
		Status:    store.JobStatusQueued,
	}
	s.jobRepo.Save(job)

	payload, err := json.Marshal(dto.IngestFileMessage{
		JobId:     job.ID,
		SessionId: sessionId,
		Filename:  filename,
		FilePath:  filePath,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		job.Status = store.JobStatusFailed
		job.Error = err.Error()
		s.jobRepo.Save(job)
		s.log.Error("upload", "Failed to enqueue ingestion job", map[string]interface{}{
			"job_id":   job.ID,
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.log.Info("upload", "File accepted, ingestion queued", map[string]interface{}{
		"job_id":     job.ID,
		"session_id": sessionId.String(),
		"filename":   filename,
	})

	return &dto.UploadResponse{
		Status:   "success",
		Message:  fmt.Sprintf("%s uploaded, parsing in background", filename),
		Filename: filename,
		Filepath: filePath,
	}, nil
}
