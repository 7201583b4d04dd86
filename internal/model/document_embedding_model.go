package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbedding struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Text         string          `gorm:"type:text"`
	Embedding    pgvector.Vector `gorm:"type:vector(1024);not null"` // Cohere embed-english-v3.0 uses 1024 dimensions
	SourceFileId uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex   int             `gorm:"default:0"` // 0-based index for ordering
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`
}

func (DocumentEmbedding) TableName() string {
	return "embeddings"
}
