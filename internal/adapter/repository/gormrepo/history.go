package gormrepo

import (
	"context"

	historyDomain "asset-approval-backend/internal/domain/history"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Create(ctx context.Context, h *historyDomain.History) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
}

func (r *HistoryRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Asset").Preload("Approval").Preload("PerformedBy")
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]historyDomain.History, error) {
	var out []historyDomain.History
	err := r.withRelations(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*historyDomain.History, error) {
	var out historyDomain.History
	if err := r.withRelations(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, mapNotFound(err, historyDomain.ErrNotFound)
	}
	return &out, nil
}
