package contract

import (
	"context"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a DocumentEmbedding with its cosine similarity to the query
type ScoredChunk struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	// DeleteBySourceFileId removes every chunk row of a file so reprocessing
	// replaces its embeddings instead of duplicating them.
	DeleteBySourceFileId(ctx context.Context, fileId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// TableExists reports whether the embeddings table has been created at all.
	// A missing table means nothing was ever ingested, which callers must
	// distinguish from a populated table returning zero matches.
	TableExists(ctx context.Context) (bool, error)
	// SearchNearestWithScore returns up to limit rows ordered by descending
	// cosine similarity (ascending vector distance) to the query embedding.
	SearchNearestWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)
}
