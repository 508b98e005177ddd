package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"tsai-chat-be/internal/dto"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/pkg/logger"
	"tsai-chat-be/internal/repository/contract"
	"tsai-chat-be/internal/repository/memory"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/embedding"
	"tsai-chat-be/pkg/events"
	"tsai-chat-be/pkg/extract"
	pktNats "tsai-chat-be/pkg/nats"
	"tsai-chat-be/pkg/store"
	"tsai-chat-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIngestionService interface {
	Consume(ctx context.Context) error
}

// ingestionService drains the upload queue and turns files into knowledge
// passages: extract, chunk, then embed and insert one chunk at a time.
// Chunks already inserted stay when a later chunk fails; partial coverage is
// accepted over rollback.
type ingestionService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	jobRepo           *memory.JobRepository
	eventPublisher    *pktNats.Publisher
	chunkSize         int
	chunkOverlap      int
	log               logger.ILogger
}

func NewIngestionService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	jobRepo *memory.JobRepository,
	eventPublisher *pktNats.Publisher,
	chunkSize int,
	chunkOverlap int,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		jobRepo:           jobRepo,
		eventPublisher:    eventPublisher,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		log:               log,
	}
}

func (s *ingestionService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *ingestionService) processMessage(ctx context.Context, msg *message.Message) {
	// Every exit path Acks: the queue is in-process and has no redelivery
	// worth retrying into; failures are recorded on the job instead.
	defer msg.Ack()

	var payload dto.IngestFileMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("ingestion", "Failed to unmarshal ingestion message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	job, found := s.jobRepo.Get(payload.JobId)
	if !found {
		job = &store.IngestionJob{
			ID:        payload.JobId,
			SessionID: payload.SessionId.String(),
			Filename:  payload.Filename,
			FilePath:  payload.FilePath,
		}
	}

	s.log.Info("ingestion", "Processing file", map[string]interface{}{
		"job_id":     job.ID,
		"session_id": payload.SessionId.String(),
		"filename":   payload.Filename,
	})

	s.setStatus(job, store.JobStatusExtracting)
	data, err := os.ReadFile(payload.FilePath)
	if err != nil {
		s.fail(job, payload, "read file: "+err.Error())
		return
	}
	text, err := extract.Text(data, payload.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			s.log.Warn("ingestion", "Unsupported file format", map[string]interface{}{
				"job_id":   job.ID,
				"filename": payload.Filename,
			})
		}
		s.fail(job, payload, "extract: "+err.Error())
		return
	}

	s.setStatus(job, store.JobStatusChunking)
	chunks := utils.SplitText(text, s.chunkSize, s.chunkOverlap)
	job.ChunksTotal = len(chunks)
	s.jobRepo.Save(job)

	if len(chunks) == 0 {
		s.log.Warn("ingestion", "File produced no text", map[string]interface{}{
			"job_id":   job.ID,
			"filename": payload.Filename,
		})
		s.setStatus(job, store.JobStatusDone)
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The whole batch is abandoned if the session is already gone; a delete
	// racing us past this point is caught per-insert below.
	visible, err := uow.SessionRepository().Exists(ctx, payload.SessionId)
	if err != nil {
		s.fail(job, payload, "session check: "+err.Error())
		return
	}
	if !visible {
		s.fail(job, payload, "session deleted before ingestion")
		return
	}

	s.setStatus(job, store.JobStatusEmbedding)
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			// Earlier chunks stay inserted. Remaining chunks are skipped.
			s.failPartial(job, payload, i, "embed chunk: "+err.Error())
			return
		}

		passage := &entity.KnowledgePassage{
			SessionId: payload.SessionId,
			Content:   chunk,
			Embedding: res.Embedding.Values,
			CreatedAt: time.Now(),
		}
		if err := uow.KnowledgeRepository().Create(ctx, passage); err != nil {
			if errors.Is(err, contract.ErrSessionNotFound) {
				s.failPartial(job, payload, i, "session deleted mid-ingestion")
				return
			}
			s.failPartial(job, payload, i, "store chunk: "+err.Error())
			return
		}

		job.ChunksDone = i + 1
		s.jobRepo.Save(job)
	}

	s.setStatus(job, store.JobStatusStored)
	s.setStatus(job, store.JobStatusDone)

	s.log.Info("ingestion", "File processed", map[string]interface{}{
		"job_id":   job.ID,
		"filename": payload.Filename,
		"chunks":   len(chunks),
	})
	s.publishEvent(ctx, events.NewIngestionCompleted(payload.SessionId.String(), payload.Filename, len(chunks)))
}

func (s *ingestionService) setStatus(job *store.IngestionJob, status string) {
	job.Status = status
	s.jobRepo.Save(job)
}

func (s *ingestionService) fail(job *store.IngestionJob, payload dto.IngestFileMessage, reason string) {
	job.Status = store.JobStatusFailed
	job.Error = reason
	s.jobRepo.Save(job)
	s.log.Error("ingestion", "Ingestion failed", map[string]interface{}{
		"job_id":   job.ID,
		"filename": payload.Filename,
		"reason":   reason,
	})
	s.publishEvent(context.Background(), events.NewIngestionFailed(payload.SessionId.String(), payload.Filename, reason))
}

func (s *ingestionService) failPartial(job *store.IngestionJob, payload dto.IngestFileMessage, chunksDone int, reason string) {
	job.ChunksDone = chunksDone
	s.fail(job, payload, reason)
}

// publishEvent emits a lifecycle event for external observers. Best-effort:
// NATS being down never affects the job outcome.
func (s *ingestionService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("ingestion", "Failed to publish lifecycle event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
