package implementation

import (
	"context"

	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/mapper"
	"tsai-chat-be/internal/model"
	"tsai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, passage *entity.KnowledgePassage) error {
	// Pre-check rather than lock: a session deleted between this check and
	// the insert leaves a row the delete cascade removes.
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", passage.SessionId).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return contract.ErrSessionNotFound
	}

	m := r.mapper.ToModel(passage)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*passage = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) SearchSimilar(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*entity.KnowledgePassage, error) {
	if limit <= 0 {
		limit = 4
	}
	var models []*model.KnowledgePassage

	// L2 distance, matching what the embedding model was indexed with.
	// Secondary order on id keeps ties deterministic.
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order(gorm.Expr("embedding <-> ?", pgvector.NewVector(embedding))).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.KnowledgePassage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KnowledgeRepositoryImpl) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgePassage{}).
		Where("session_id = ?", sessionId).
		Count(&count).Error
	return count, err
}

func (r *KnowledgeRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.KnowledgePassage{}).Error
}
