package unitofwork

import (
	"context"

	"doc-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	DocumentFileRepository() contract.DocumentFileRepository
}
