package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentEmbedding struct {
	Id           uuid.UUID
	Text         string
	Embedding    []float32
	SourceFileId uuid.UUID
	ChunkIndex   int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
