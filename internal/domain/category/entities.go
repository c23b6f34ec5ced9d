package category

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already exists")
)

// Table: categories
type Category struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null;index" json:"name"`
	Prefix    string    `gorm:"column:prefix;size:20;not null" json:"prefix"`
	IsDevice  bool      `gorm:"column:is_device;not null;default:false" json:"isDevice"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }
