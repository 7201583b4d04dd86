package implementation

import (
	"context"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/mapper"
	"doc-chat-be/internal/model"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	models := r.mapper.ToModels(embeddings)

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Write generated IDs back to entities
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteBySourceFileId(ctx context.Context, fileId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("source_file_id = ?", fileId).Delete(&model.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentEmbedding{}).Count(&count).Error
	return count, err
}

// TableExists probes information_schema so a never-migrated database can be
// told apart from an empty search result.
func (r *DocumentEmbeddingRepositoryImpl) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_name = ?
		)`, model.DocumentEmbedding{}.TableName()).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SearchNearestWithScore ranks rows with pgvector cosine distance.
// Similarity is reported as 1 - (embedding <=> query). Ordering uses the
// ascending distance expression directly; ordering by the similarity alias
// descending would sort NULL embeddings above every real match.
func (r *DocumentEmbeddingRepositoryImpl) SearchNearestWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("embeddings").
		Select("embeddings.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Where("embeddings.deleted_at IS NULL").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "embedding <=> ?",
			Vars:               []interface{}{queryVector},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Embedding:  r.mapper.ToEntity(&res.DocumentEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
