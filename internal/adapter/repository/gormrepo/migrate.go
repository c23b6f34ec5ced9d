package gormrepo

import (
	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/upload"
	"asset-approval-backend/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&category.Category{},
		&asset.Asset{},
		&approval.Approval{},
		&approval.Signature{},
		&approval.Asset{},
		&history.History{},
		&upload.File{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
