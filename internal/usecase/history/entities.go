package history

import (
	"encoding/json"

	domain "asset-approval-backend/internal/domain/history"
)

type CreateInput struct {
	Type          domain.Type
	Description   *string
	AssetID       *string
	ApprovalID    *string
	PerformedByID *string
	FromUserID    *string
	ToUserID      *string
	Metadata      map[string]any
}

type AssetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ApprovalRef struct {
	ID             string `json:"id"`
	SubmissionType string `json:"submissionType"`
	Status         string `json:"status"`
}

type UserRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type DTO struct {
	ID          string          `json:"id"`
	Type        domain.Type     `json:"type"`
	Description *string         `json:"description"`
	AssetID     *string         `json:"assetId"`
	Asset       *AssetRef       `json:"asset"`
	ApprovalID  *string         `json:"approvalId"`
	Approval    *ApprovalRef    `json:"approval"`
	PerformedBy *UserRef        `json:"performedBy"`
	FromUserID  *string         `json:"fromUserId"`
	ToUserID    *string         `json:"toUserId"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   string          `json:"createdAt"`
}

func (u *Usecase) toDTO(h *domain.History) DTO {
	d := DTO{
		ID:          h.ID,
		Type:        h.Type,
		Description: h.Description,
		AssetID:     h.AssetID,
		ApprovalID:  h.ApprovalID,
		FromUserID:  h.FromUserID,
		ToUserID:    h.ToUserID,
		CreatedAt:   u.fmt.DateTime(h.CreatedAt),
	}
	if len(h.Metadata) > 0 {
		d.Metadata = json.RawMessage(h.Metadata)
	}
	if h.Asset != nil {
		d.Asset = &AssetRef{ID: h.Asset.ID, Name: h.Asset.Name, Code: h.Asset.Code}
	}
	if h.Approval != nil {
		d.Approval = &ApprovalRef{
			ID:             h.Approval.ID,
			SubmissionType: string(h.Approval.SubmissionType),
			Status:         string(h.Approval.Status),
		}
	}
	if h.PerformedBy != nil {
		d.PerformedBy = &UserRef{ID: h.PerformedBy.ID, FullName: h.PerformedBy.FullName(), Email: h.PerformedBy.Email}
	}
	return d
}
