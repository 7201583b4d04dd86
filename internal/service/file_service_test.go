package service

import (
	"context"
	"testing"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagingFileRepo records the specifications each query was built with.
type pagingFileRepo struct {
	files        []*entity.DocumentFile
	total        int64
	findAllSpecs []specification.Specification
	countSpecs   []specification.Specification
}

func (r *pagingFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFile, error) {
	return nil, nil
}

func (r *pagingFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFile, error) {
	r.findAllSpecs = specs
	return r.files, nil
}

func (r *pagingFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.countSpecs = specs
	return r.total, nil
}

func paginationOf(specs []specification.Specification) (specification.Pagination, bool) {
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			return p, true
		}
	}
	return specification.Pagination{}, false
}

func hasFilter(specs []specification.Specification, field string, value interface{}) bool {
	for _, s := range specs {
		if f, ok := s.(specification.FilterBy); ok && f.Field == field && f.Value == value {
			return true
		}
	}
	return false
}

func hasOrder(specs []specification.Specification, field string, desc bool) bool {
	for _, s := range specs {
		if o, ok := s.(specification.OrderBy); ok && o.Field == field && o.Desc == desc {
			return true
		}
	}
	return false
}

func TestGetAllFilesPaginatesAndCounts(t *testing.T) {
	fileA := &entity.DocumentFile{Id: uuid.New(), Name: "a.pdf", MimeType: "application/pdf"}
	fileB := &entity.DocumentFile{Id: uuid.New(), Name: "b.txt", MimeType: "text/plain"}

	fileRepo := &pagingFileRepo{files: []*entity.DocumentFile{fileA, fileB}, total: 42}
	embeddingRepo := &fakeEmbeddingRepo{
		created: []*entity.DocumentEmbedding{
			{Id: uuid.New(), SourceFileId: fileA.Id},
			{Id: uuid.New(), SourceFileId: fileA.Id},
			{Id: uuid.New(), SourceFileId: fileB.Id},
		},
	}

	svc := NewFileService(&fakeFactory{repo: embeddingRepo, fileRepo: fileRepo})

	res, err := svc.GetAllFiles(context.Background(), &dto.ListFilesQuery{Limit: 2, Offset: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.Total)
	require.Len(t, res.Files, 2)
	assert.Equal(t, int64(2), res.Files[0].ChunkCount)
	assert.Equal(t, int64(1), res.Files[1].ChunkCount)

	page, ok := paginationOf(fileRepo.findAllSpecs)
	require.True(t, ok, "listing must paginate")
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 4, page.Offset)
	assert.True(t, hasOrder(fileRepo.findAllSpecs, "created_at", true))

	// Count reflects the whole filtered set, never a page of it.
	_, counted := paginationOf(fileRepo.countSpecs)
	assert.False(t, counted)
}

func TestGetAllFilesAppliesDefaultsAndBounds(t *testing.T) {
	tests := []struct {
		name       string
		query      dto.ListFilesQuery
		wantLimit  int
		wantOffset int
	}{
		{name: "zero values use defaults", query: dto.ListFilesQuery{}, wantLimit: 20, wantOffset: 0},
		{name: "negative offset clamped", query: dto.ListFilesQuery{Offset: -3}, wantLimit: 20, wantOffset: 0},
		{name: "oversized limit capped", query: dto.ListFilesQuery{Limit: 5000}, wantLimit: 100, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileRepo := &pagingFileRepo{}
			svc := NewFileService(&fakeFactory{repo: &fakeEmbeddingRepo{}, fileRepo: fileRepo})

			_, err := svc.GetAllFiles(context.Background(), &tt.query)
			require.NoError(t, err)

			page, ok := paginationOf(fileRepo.findAllSpecs)
			require.True(t, ok)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestGetAllFilesFiltersByMimeType(t *testing.T) {
	fileRepo := &pagingFileRepo{}
	svc := NewFileService(&fakeFactory{repo: &fakeEmbeddingRepo{}, fileRepo: fileRepo})

	_, err := svc.GetAllFiles(context.Background(), &dto.ListFilesQuery{MimeType: "application/pdf"})
	require.NoError(t, err)

	assert.True(t, hasFilter(fileRepo.findAllSpecs, "mime_type", "application/pdf"))
	assert.True(t, hasFilter(fileRepo.countSpecs, "mime_type", "application/pdf"))
}
