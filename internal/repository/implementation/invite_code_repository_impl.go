package implementation

import (
	"context"
	"errors"
	"time"

	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/mapper"
	"tsai-chat-be/internal/model"
	"tsai-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewInviteCodeRepository(db *gorm.DB) contract.InviteCodeRepository {
	return &InviteCodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *InviteCodeRepositoryImpl) Create(ctx context.Context, code *entity.InviteCode) error {
	m := r.mapper.InviteCodeToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.InviteCodeToEntity(m)
	return nil
}

func (r *InviteCodeRepositoryImpl) FindUnused(ctx context.Context, code uuid.UUID) (*entity.InviteCode, error) {
	var m model.InviteCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND used_by IS NULL", code).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InviteCodeToEntity(&m), nil
}

func (r *InviteCodeRepositoryImpl) MarkUsed(ctx context.Context, code uuid.UUID, username string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.InviteCode{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{"used_by": username, "used_at": now}).Error
}
