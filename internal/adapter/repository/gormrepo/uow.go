package gormrepo

import (
	"context"

	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Approvals:  &ApprovalRepository{db: tx},
		Histories:  &HistoryRepository{db: tx},
		Users:      &UserRepository{db: tx},
		Assets:     &AssetRepository{db: tx},
		Categories: &CategoryRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinApprovalTx(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.Approval) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		// lock the approval row up-front so concurrent writers serialize
		a, err := r.Approvals.FindByIDForUpdate(ctx, approvalID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
