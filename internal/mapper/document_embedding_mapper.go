package mapper

import (
	"time"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentEmbedding{
		Id:           e.Id,
		Text:         e.Text,
		Embedding:    e.Embedding.Slice(),
		SourceFileId: e.SourceFileId,
		ChunkIndex:   e.ChunkIndex,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.DocumentEmbedding{
		Id:           e.Id,
		Text:         e.Text,
		Embedding:    pgvector.NewVector(e.Embedding),
		SourceFileId: e.SourceFileId,
		ChunkIndex:   e.ChunkIndex,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntities(embeddings []*model.DocumentEmbedding) []*entity.DocumentEmbedding {
	entities := make([]*entity.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *DocumentEmbeddingMapper) ToModels(embeddings []*entity.DocumentEmbedding) []*model.DocumentEmbedding {
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
