package implementation

import (
	"context"
	"errors"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/mapper"
	"doc-chat-be/internal/model"
	"doc-chat-be/internal/repository/contract"
	"doc-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DocumentFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentFileMapper
}

func NewDocumentFileRepository(db *gorm.DB) contract.DocumentFileRepository {
	return &DocumentFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentFileMapper(),
	}
}

func (r *DocumentFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentFile, error) {
	var m model.DocumentFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentFileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentFile, error) {
	var models []*model.DocumentFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentFileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentFile{}).Count(&count).Error
	return count, err
}
