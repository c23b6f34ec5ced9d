package asset

import (
	"errors"
	"time"

	"asset-approval-backend/internal/domain/category"
)

var (
	ErrNotFound          = errors.New("asset not found")
	ErrSerialNumberTaken = errors.New("asset serial number already exists")
)

// Table: assets
type Asset struct {
	ID            string             `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name          string             `gorm:"column:name;size:150;not null;index" json:"name"`
	Code          string             `gorm:"column:code;size:64;not null;uniqueIndex" json:"code"`
	SerialNumber  *string            `gorm:"column:serial_number;size:100;index" json:"serialNumber"`
	IsMaintenance bool               `gorm:"column:is_maintenance;not null;default:false" json:"isMaintenance"`
	Image         *string            `gorm:"column:image;type:text" json:"image"`
	CategoryID    string             `gorm:"column:category_id;type:varchar(36);not null;index" json:"categoryId"`
	Category      *category.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsDeleted     bool               `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Asset) TableName() string { return "assets" }

// Grouped is the newest asset of a name group together with the group size.
type Grouped struct {
	Asset
	Quantity int64 `json:"quantity"`
}
