package approval

import (
	"errors"
	"time"

	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/user"
)

var (
	ErrNotFound          = errors.New("approval not found")
	ErrSignatureNotFound = errors.New("approval signature not found")
	ErrAssetNotFound     = errors.New("approval asset not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotSignable       = errors.New("approval is not waiting for approval")
	ErrAlreadySigned     = errors.New("signature already signed")
	ErrNotSigner         = errors.New("signature belongs to another user")
	ErrUnsignedRemain    = errors.New("not every signature has been signed")
	ErrLockedType        = errors.New("submission type can only change while draft")
	ErrSignersLocked     = errors.New("signatures are locked once the approval is finished")
)

type SubmissionType string

const (
	TypeAssignment  SubmissionType = "ASSIGNMENT"
	TypeMaintenance SubmissionType = "MAINTENANCE"
	TypeWriteOff    SubmissionType = "WRITE_OFF"
	TypeProcurement SubmissionType = "PROCUREMENT"
)

func (t SubmissionType) Valid() bool {
	switch t {
	case TypeAssignment, TypeMaintenance, TypeWriteOff, TypeProcurement:
		return true
	}
	return false
}

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusWaitingApproval Status = "WAITING_APPROVAL"
	StatusDone            Status = "DONE"
	StatusReject          Status = "REJECT"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusWaitingApproval, StatusDone, StatusReject:
		return true
	}
	return false
}

// Table: approvals
type Approval struct {
	ID             string         `gorm:"column:id;type:varchar(36);primaryKey"`
	SubmissionType SubmissionType `gorm:"column:submission_type;size:20;not null;index"`
	Status         Status         `gorm:"column:status;size:20;not null;default:DRAFT;index"`
	Notes          *string        `gorm:"column:notes;type:text"`
	CreatedByID    string         `gorm:"column:created_by_id;type:varchar(36);not null;index"`
	CreatedBy      *user.User     `gorm:"foreignKey:CreatedByID"`
	RequestedForID *string        `gorm:"column:requested_for_id;type:varchar(36);index"`
	RequestedFor   *user.User     `gorm:"foreignKey:RequestedForID"`
	Signatures     []Signature    `gorm:"foreignKey:ApprovalID"`
	Assets         []Asset        `gorm:"foreignKey:ApprovalID"`
	IsDeleted      bool           `gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Approval) TableName() string { return "approvals" }

// Table: approval_signatures
type Signature struct {
	ID         string     `gorm:"column:id;type:varchar(36);primaryKey"`
	ApprovalID string     `gorm:"column:approval_id;type:varchar(36);not null;index"`
	UserID     *string    `gorm:"column:user_id;type:varchar(36);index"`
	User       *user.User `gorm:"foreignKey:UserID"`
	Name       *string    `gorm:"column:name;size:150"`
	Email      *string    `gorm:"column:email;size:191"`
	Image      *string    `gorm:"column:image;type:text"`
	SignedAt   *time.Time `gorm:"column:signed_at"`
	PositionX  *float64   `gorm:"column:position_x"`
	PositionY  *float64   `gorm:"column:position_y"`
	IsDeleted  bool       `gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Signature) TableName() string { return "approval_signatures" }

func (s Signature) IsSigned() bool { return s.Image != nil && *s.Image != "" && s.SignedAt != nil }

func (s Signature) IsPositioned() bool { return s.PositionX != nil && s.PositionY != nil }

// Table: approval_assets
type Asset struct {
	ID            string             `gorm:"column:id;type:varchar(36);primaryKey"`
	ApprovalID    string             `gorm:"column:approval_id;type:varchar(36);not null;index"`
	AssetID       *string            `gorm:"column:asset_id;type:varchar(36);index"`
	Asset         *asset.Asset       `gorm:"foreignKey:AssetID"`
	Name          *string            `gorm:"column:name;size:150"`
	SerialNumber  *string            `gorm:"column:serial_number;size:100"`
	IsMaintenance *bool              `gorm:"column:is_maintenance"`
	Image         *string            `gorm:"column:image;type:text"`
	CategoryID    *string            `gorm:"column:category_id;type:varchar(36);index"`
	Category      *category.Category `gorm:"foreignKey:CategoryID"`
	IsDeleted     bool               `gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string { return "approval_assets" }

// Position places one signature block on the rendered document.
type Position struct {
	SignatureID string
	X           float64
	Y           float64
}
