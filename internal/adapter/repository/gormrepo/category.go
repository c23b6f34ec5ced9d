package gormrepo

import (
	"context"
	"strings"

	categoryDomain "asset-approval-backend/internal/domain/category"

	"gorm.io/gorm"
)

type CategoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{db: db} }

func (r *CategoryRepository) Create(ctx context.Context, c *categoryDomain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *categoryDomain.Category) error {
	return r.db.WithContext(ctx).Model(&categoryDomain.Category{}).
		Where("id = ? AND is_deleted = ?", c.ID, false).
		Updates(map[string]any{"name": c.Name, "prefix": c.Prefix, "is_device": c.IsDevice}).Error
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&categoryDomain.Category{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*categoryDomain.Category, error) {
	var out categoryDomain.Category
	if err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&out).Error; err != nil {
		return nil, mapNotFound(err, categoryDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*categoryDomain.Category, error) {
	var out categoryDomain.Category
	if err := r.db.WithContext(ctx).Where("name = ? AND is_deleted = ?", strings.TrimSpace(name), false).First(&out).Error; err != nil {
		return nil, mapNotFound(err, categoryDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CategoryRepository) filtered(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&categoryDomain.Category{}).Where("is_deleted = ?", false)
	if strings.TrimSpace(search) != "" {
		like := likeLower(search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(prefix) LIKE ?)", like, like)
	}
	return q
}

func (r *CategoryRepository) List(ctx context.Context, q categoryDomain.ListQuery) ([]categoryDomain.Category, error) {
	var out []categoryDomain.Category
	err := r.filtered(ctx, q.Search).Order("created_at DESC").Offset(q.Offset()).Limit(q.Size).Find(&out).Error
	return out, err
}

func (r *CategoryRepository) Count(ctx context.Context, q categoryDomain.ListQuery) (int64, error) {
	var n int64
	err := r.filtered(ctx, q.Search).Count(&n).Error
	return n, err
}
