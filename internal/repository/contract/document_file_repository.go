package contract

import (
	"context"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"
)

// DocumentFileRepository is read-only: file rows are written by the ingestion
// collaborator that parses uploads, this service only lists and resolves them.
type DocumentFileRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
