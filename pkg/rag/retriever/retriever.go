package retriever

import (
	"context"
	"errors"
	"strings"

	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/embedding"
)

// Retriever turns a free-text query into grounding context: embed the query,
// rank stored passages by vector distance, select the context passages.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	log               logger.ILogger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		log:               log,
	}
}

// Config encapsulates retrieval parameters. TopN controls how many candidates
// are fetched; ContextSize controls how many of them become prompt context.
// They are separate knobs so a future multi-passage policy does not change
// the retrieval call shape.
type Config struct {
	TopN        int
	ContextSize int
}

// DefaultConfig returns the retrieval defaults
func DefaultConfig() Config {
	return Config{
		TopN:        5,
		ContextSize: 1,
	}
}

// Search embeds the query and returns up to topN scored candidates, best
// first. Callers needing raw candidates (diagnostics) use this directly.
func (r *Retriever) Search(ctx context.Context, query string, topN int) ([]*contract.ScoredChunk, error) {
	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, apperror.EmbeddingProvider(err)
	}
	if len(embeddingRes.Embedding.Values) == 0 {
		// An empty vector for non-empty input is unusable, not a valid embedding
		return nil, apperror.EmbeddingProvider(errors.New("provider returned an empty vector"))
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DocumentEmbeddingRepository()

	exists, err := repo.TableExists(ctx)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if !exists {
		return nil, apperror.NoDocumentsIngested()
	}

	candidates, err := repo.SearchNearestWithScore(ctx, embeddingRes.Embedding.Values, topN)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if len(candidates) == 0 {
		return nil, apperror.NoRelevantContext()
	}

	r.log.Debug("retriever", "vector search completed", map[string]interface{}{
		"candidates": len(candidates),
		"top_score":  candidates[0].Similarity,
	})

	return candidates, nil
}

// Retrieve returns the context string for a query: the text of the
// ContextSize highest-ranked passages (default: only the best one).
func (r *Retriever) Retrieve(ctx context.Context, query string, config Config) (string, error) {
	candidates, err := r.Search(ctx, query, config.TopN)
	if err != nil {
		return "", err
	}

	contextSize := config.ContextSize
	if contextSize <= 0 {
		contextSize = 1
	}
	if contextSize > len(candidates) {
		contextSize = len(candidates)
	}

	passages := make([]string, 0, contextSize)
	for _, c := range candidates[:contextSize] {
		passages = append(passages, c.Embedding.Text)
	}

	return strings.Join(passages, "\n\n"), nil
}
