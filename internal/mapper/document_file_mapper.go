package mapper

import (
	"encoding/json"
	"time"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentFileMapper struct{}

func NewDocumentFileMapper() *DocumentFileMapper {
	return &DocumentFileMapper{}
}

func (m *DocumentFileMapper) ToEntity(e *model.DocumentFile) *entity.DocumentFile {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.DocumentFile{
		Id:        e.Id,
		Name:      e.Name,
		Path:      e.Path,
		Size:      e.Size,
		MimeType:  e.MimeType,
		UserEmail: e.UserEmail,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *DocumentFileMapper) ToModel(e *entity.DocumentFile) *model.DocumentFile {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DocumentFile{
		Id:        e.Id,
		Name:      e.Name,
		Path:      e.Path,
		Size:      e.Size,
		MimeType:  e.MimeType,
		UserEmail: e.UserEmail,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *DocumentFileMapper) ToEntities(files []*model.DocumentFile) []*entity.DocumentFile {
	entities := make([]*entity.DocumentFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
