package mapper

import (
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.DocumentEmbedding) *entity.DocumentChunk {
	if d == nil {
		return nil
	}
	return &entity.DocumentChunk{
		Id:         d.Id,
		DocumentId: d.DocumentId,
		Filename:   d.Filename,
		DocType:    d.DocType,
		ChunkIndex: d.ChunkIndex,
		Content:    d.Content,
		Embedding:  d.Embedding.Slice(),
		CreatedAt:  d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.DocumentChunk) *model.DocumentEmbedding {
	if d == nil {
		return nil
	}
	return &model.DocumentEmbedding{
		Id:         d.Id,
		DocumentId: d.DocumentId,
		Filename:   d.Filename,
		DocType:    d.DocType,
		ChunkIndex: d.ChunkIndex,
		Content:    d.Content,
		Embedding:  pgvector.NewVector(d.Embedding),
		CreatedAt:  d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.DocumentEmbedding) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(models))
	for i, d := range models {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
