package mapper

import (
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/model"
)

type UploadFileMapper struct{}

func NewUploadFileMapper() *UploadFileMapper {
	return &UploadFileMapper{}
}

func (m *UploadFileMapper) ToEntity(f *model.UploadFile) *entity.UploadFile {
	if f == nil {
		return nil
	}

	return &entity.UploadFile{
		Id:        f.Id,
		SessionId: f.SessionId,
		Filename:  f.Filename,
		Filepath:  f.Filepath,
		CreatedAt: f.CreatedAt,
	}
}

func (m *UploadFileMapper) ToModel(f *entity.UploadFile) *model.UploadFile {
	if f == nil {
		return nil
	}

	return &model.UploadFile{
		Id:        f.Id,
		SessionId: f.SessionId,
		Filename:  f.Filename,
		Filepath:  f.Filepath,
		CreatedAt: f.CreatedAt,
	}
}
