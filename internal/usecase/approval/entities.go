package approval

import (
	"encoding/json"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/paging"
	"asset-approval-backend/internal/domain/user"
)

type SignatureInput struct {
	ID        string
	UserID    *string
	Name      *string
	Email     *string
	IsDeleted bool
}

type AssetInput struct {
	ID            string
	AssetID       *string
	Name          *string
	SerialNumber  *string
	IsMaintenance *bool
	Image         *string
	CategoryID    *string
	IsDeleted     bool
}

type CreateInput struct {
	SubmissionType domain.SubmissionType
	Status         domain.Status // empty means DRAFT
	Notes          *string
	RequestedForID *string
	CreatedByID    string
	Signatures     []SignatureInput
	Assets         []AssetInput
}

type UpdateInput struct {
	ID             string
	ActorID        string
	SubmissionType domain.SubmissionType
	Notes          *string
	RequestedForID *string
	Signatures     []SignatureInput
	Assets         []AssetInput
}

type StatusInput struct {
	ID      string
	ActorID string
	Status  domain.Status
}

type PositionsInput struct {
	ApprovalID string
	ActorID    string
	Positions  []domain.Position
}

type SignInput struct {
	SignatureID string
	ActorID     string
	Image       string
}

type ListInput struct {
	Page   int
	Size   int
	Search string
	Actor  user.Actor
}

// ---- response DTOs ----

type UserSummary struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Image       *string         `json:"image"`
	SocialMedia json.RawMessage `json:"socialMedia,omitempty"`
	Role        user.Role       `json:"role"`
	IsActive    bool            `json:"isActive"`
}

type CategoryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix"`
	IsDevice bool   `json:"isDevice"`
}

type AssetRefDTO struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	SerialNumber  *string      `json:"serialNumber"`
	IsMaintenance bool         `json:"isMaintenance"`
	Image         *string      `json:"image"`
	Category      *CategoryDTO `json:"category,omitempty"`
}

// SignatureDTO omits the parent approval id.
type SignatureDTO struct {
	ID        string       `json:"id"`
	UserID    *string      `json:"userId"`
	Name      *string      `json:"name"`
	Email     *string      `json:"email"`
	Image     *string      `json:"image"`
	SignedAt  *string      `json:"signedAt"`
	PositionX *float64     `json:"positionX"`
	PositionY *float64     `json:"positionY"`
	User      *UserSummary `json:"user,omitempty"`
}

// ApprovalAssetDTO omits the parent approval id.
type ApprovalAssetDTO struct {
	ID            string       `json:"id"`
	AssetID       *string      `json:"assetId"`
	Name          *string      `json:"name"`
	SerialNumber  *string      `json:"serialNumber"`
	IsMaintenance *bool        `json:"isMaintenance"`
	Image         *string      `json:"image"`
	CategoryID    *string      `json:"categoryId"`
	Asset         *AssetRefDTO `json:"asset,omitempty"`
	Category      *CategoryDTO `json:"category,omitempty"`
}

type ApprovalDTO struct {
	ID             string                `json:"id"`
	SubmissionType domain.SubmissionType `json:"submissionType"`
	Status         domain.Status         `json:"status"`
	Notes          *string               `json:"notes"`
	CreatedByID    string                `json:"createdById"`
	RequestedForID *string               `json:"requestedForId"`
	CreatedBy      *UserSummary          `json:"createdBy,omitempty"`
	RequestedFor   *UserSummary          `json:"requestedFor,omitempty"`
	Signatures     []SignatureDTO        `json:"signatures"`
	Assets         []ApprovalAssetDTO    `json:"assets"`
	CreatedAt      string                `json:"createdAt"`
	UpdatedAt      string                `json:"updatedAt"`
}

type ListResult struct {
	Items []ApprovalDTO
	Meta  paging.Meta
}

type ReviewedDTO struct {
	IsReviewed bool `json:"isReviewed"`
}

type PreviousSignatureDTO struct {
	Image string `json:"image"`
}

type ApproverDTO struct {
	ID       string    `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Role     user.Role `json:"role"`
}
