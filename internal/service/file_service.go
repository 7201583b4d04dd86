package service

import (
	"context"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
)

const (
	defaultFilePageSize = 20
	maxFilePageSize     = 100
)

type IFileService interface {
	GetAllFiles(ctx context.Context, query *dto.ListFilesQuery) (*dto.ListFilesResponse, error)
}

type fileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFileService(uowFactory unitofwork.RepositoryFactory) IFileService {
	return &fileService{
		uowFactory: uowFactory,
	}
}

func (s *fileService) GetAllFiles(ctx context.Context, query *dto.ListFilesQuery) (*dto.ListFilesResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultFilePageSize
	}
	if limit > maxFilePageSize {
		limit = maxFilePageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	filters := []specification.Specification{}
	if query.MimeType != "" {
		filters = append(filters, specification.Filter("mime_type", query.MimeType))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	fileRepo := uow.DocumentFileRepository()
	embeddingRepo := uow.DocumentEmbeddingRepository()

	// Total matches the filter, not the page.
	total, err := fileRepo.Count(ctx, filters...)
	if err != nil {
		return nil, apperror.Store(err)
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	files, err := fileRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Store(err)
	}

	response := make([]*dto.FileResponse, 0, len(files))
	for _, f := range files {
		chunkCount, err := embeddingRepo.Count(ctx, specification.BySourceFileID{FileID: f.Id})
		if err != nil {
			return nil, apperror.Store(err)
		}
		response = append(response, &dto.FileResponse{
			Id:         f.Id,
			Name:       f.Name,
			Size:       f.Size,
			MimeType:   f.MimeType,
			ChunkCount: chunkCount,
			Metadata:   f.Metadata,
			CreatedAt:  f.CreatedAt,
		})
	}

	return &dto.ListFilesResponse{
		Files: response,
		Total: total,
	}, nil
}
