package history

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/user"
)

var ErrNotFound = errors.New("history not found")

type Type string

const (
	TypeApprovalCreated Type = "APPROVAL_CREATED"
	TypeStatusChanged   Type = "STATUS_CHANGED"
	TypeSigned          Type = "SIGNED"
	TypeAssignment      Type = "ASSIGNMENT"
	TypeMaintenance     Type = "MAINTENANCE"
	TypeWriteOff        Type = "WRITE_OFF"
	TypeProcurement     Type = "PROCUREMENT"
	TypeReturn          Type = "RETURN"
)

// Table: histories
type History struct {
	ID            string             `gorm:"column:id;type:varchar(36);primaryKey"`
	Type          Type               `gorm:"column:type;size:30;not null;index"`
	Description   *string            `gorm:"column:description;type:text"`
	AssetID       *string            `gorm:"column:asset_id;type:varchar(36);index"`
	Asset         *asset.Asset       `gorm:"foreignKey:AssetID"`
	ApprovalID    *string            `gorm:"column:approval_id;type:varchar(36);index"`
	Approval      *approval.Approval `gorm:"foreignKey:ApprovalID"`
	PerformedByID *string            `gorm:"column:performed_by_id;type:varchar(36);index"`
	PerformedBy   *user.User         `gorm:"foreignKey:PerformedByID"`
	FromUserID    *string            `gorm:"column:from_user_id;type:varchar(36)"`
	ToUserID      *string            `gorm:"column:to_user_id;type:varchar(36)"`
	Metadata      datatypes.JSON     `gorm:"column:metadata"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime;index"`
}

func (History) TableName() string { return "histories" }
