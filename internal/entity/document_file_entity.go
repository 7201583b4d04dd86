package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentFile struct {
	Id        uuid.UUID
	Name      string
	Path      string
	Size      int64
	MimeType  string
	UserEmail string
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
}
