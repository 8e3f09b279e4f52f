package contract

import (
	"context"

	"ai-docchat-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentEmbeddingRepository interface {
	CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error
	// FindNearest returns the chunks closest to the query embedding by cosine
	// distance, nearest first.
	FindNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.DocumentChunk, error)
	// DistinctDocuments lists one representative chunk per ingested document
	// (metadata reads for the analytics panels).
	DistinctDocuments(ctx context.Context) ([]*entity.DocumentChunk, error)
	CountDistinctDocuments(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) ([]entity.DocumentTypeCount, error)
}
