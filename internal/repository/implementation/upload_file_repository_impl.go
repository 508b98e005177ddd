package implementation

import (
	"context"

	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/mapper"
	"tsai-chat-be/internal/model"
	"tsai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UploadFileMapper
}

func NewUploadFileRepository(db *gorm.DB) contract.UploadFileRepository {
	return &UploadFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewUploadFileMapper(),
	}
}

func (r *UploadFileRepositoryImpl) Create(ctx context.Context, file *entity.UploadFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *UploadFileRepositoryImpl) ExistsByFilename(ctx context.Context, sessionId uuid.UUID, filename string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UploadFile{}).
		Where("session_id = ? AND filename = ?", sessionId, filename).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UploadFileRepositoryImpl) FindAllBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.UploadFile, error) {
	if limit <= 0 {
		limit = 500
	}
	var models []*model.UploadFile
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.UploadFile, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *UploadFileRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.UploadFile{}).Error
}
