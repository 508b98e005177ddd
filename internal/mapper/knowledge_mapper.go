package mapper

import (
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(p *model.KnowledgePassage) *entity.KnowledgePassage {
	if p == nil {
		return nil
	}

	return &entity.KnowledgePassage{
		Id:        p.Id,
		SessionId: p.SessionId,
		Content:   p.Content,
		Embedding: p.Embedding.Slice(),
		CreatedAt: p.CreatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(p *entity.KnowledgePassage) *model.KnowledgePassage {
	if p == nil {
		return nil
	}

	return &model.KnowledgePassage{
		Id:        p.Id,
		SessionId: p.SessionId,
		Content:   p.Content,
		Embedding: pgvector.NewVector(p.Embedding),
		CreatedAt: p.CreatedAt,
	}
}
