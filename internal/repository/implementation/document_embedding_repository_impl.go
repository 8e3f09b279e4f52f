package implementation

import (
	"context"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentEmbedding, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByDocumentIds(ctx context.Context, documentIds []uuid.UUID) error {
	if len(documentIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("document_id IN ?", documentIds).
		Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) FindNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentEmbedding
	err := r.db.WithContext(ctx).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []interface{}{pgvector.NewVector(embedding)}},
		}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentEmbeddingRepositoryImpl) DistinctDocuments(ctx context.Context) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentEmbedding
	err := r.db.WithContext(ctx).
		Select("DISTINCT ON (document_id) *").
		Order("document_id, chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentEmbeddingRepositoryImpl) CountDistinctDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentEmbedding{}).
		Select("COUNT(DISTINCT document_id)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DocumentEmbeddingRepositoryImpl) CountByType(ctx context.Context) ([]entity.DocumentTypeCount, error) {
	var rows []entity.DocumentTypeCount
	err := r.db.WithContext(ctx).
		Model(&model.DocumentEmbedding{}).
		Select("doc_type, COUNT(DISTINCT document_id) as count").
		Group("doc_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
