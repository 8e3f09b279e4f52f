package retrieval

import (
	"context"
	"time"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/unitofwork"
	"ai-docchat-be/pkg/embedding"
	"ai-docchat-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	// chunkSize 1500 chars (roughly 375 tokens) keeps chunks well inside the
	// embedding context limit; 200 chars of overlap preserves boundary context.
	chunkSize    = 1500
	chunkOverlap = 200

	// DefaultTopK is how many chunks a search returns unless asked otherwise.
	DefaultTopK = 4
)

// Store is the pgvector-backed document store: chunked ingestion on one side,
// nearest-neighbour search on the other.
type Store struct {
	uow      unitofwork.UnitOfWork
	embedder embedding.Provider
}

func NewStore(uow unitofwork.UnitOfWork, embedder embedding.Provider) *Store {
	return &Store{
		uow:      uow,
		embedder: embedder,
	}
}

// AddDocument splits, embeds and stores one document. Re-ingesting an
// existing document id replaces its chunks atomically.
func (s *Store) AddDocument(ctx context.Context, documentId uuid.UUID, filename, docType, content string) (int, error) {
	chunks := utils.SplitText(content, chunkSize, chunkOverlap)

	now := time.Now()
	rows := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embedder.Generate(chunk, embedding.TaskDocument)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: documentId,
			Filename:   filename,
			DocType:    docType,
			ChunkIndex: i,
			Content:    chunk,
			Embedding:  vec,
			CreatedAt:  now,
		})
	}

	if err := s.uow.Begin(ctx); err != nil {
		return 0, err
	}
	if err := s.uow.DocumentEmbeddingRepository().DeleteByDocumentIds(ctx, []uuid.UUID{documentId}); err != nil {
		_ = s.uow.Rollback()
		return 0, err
	}
	if err := s.uow.DocumentEmbeddingRepository().CreateBatch(ctx, rows); err != nil {
		_ = s.uow.Rollback()
		return 0, err
	}
	if err := s.uow.Commit(); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// Delete removes every chunk of the given documents.
func (s *Store) Delete(ctx context.Context, documentIds []uuid.UUID) error {
	return s.uow.DocumentEmbeddingRepository().DeleteByDocumentIds(ctx, documentIds)
}

// Search embeds the query and returns the topK nearest chunks.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]*entity.DocumentChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	vec, err := s.embedder.Generate(query, embedding.TaskQuery)
	if err != nil {
		return nil, err
	}
	return s.uow.DocumentEmbeddingRepository().FindNearest(ctx, vec, topK)
}

// Documents lists one row per ingested document for the admin corpus panel.
func (s *Store) Documents(ctx context.Context) ([]*entity.DocumentChunk, error) {
	return s.uow.DocumentEmbeddingRepository().DistinctDocuments(ctx)
}
