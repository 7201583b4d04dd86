package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListFilesQuery struct {
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
	MimeType string `query:"mime_type"`
}

type FileResponse struct {
	Id         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	Size       int64                  `json:"size"`
	MimeType   string                 `json:"mime_type"`
	ChunkCount int64                  `json:"chunk_count"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ListFilesResponse struct {
	Files []*FileResponse `json:"files"`
	Total int64           `json:"total"`
}
