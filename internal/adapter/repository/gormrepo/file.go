package gormrepo

import (
	"context"

	uploadDomain "asset-approval-backend/internal/domain/upload"

	"gorm.io/gorm"
)

type FileRepository struct{ db *gorm.DB }

func NewFileRepository(db *gorm.DB) *FileRepository { return &FileRepository{db: db} }

func (r *FileRepository) Create(ctx context.Context, f *uploadDomain.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}
