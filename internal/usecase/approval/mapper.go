package approval

import (
	"encoding/json"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/timefmt"
)

func toUserSummary(u *user.User) *UserSummary {
	if u == nil {
		return nil
	}
	var social json.RawMessage
	if len(u.SocialMedia) > 0 {
		social = json.RawMessage(u.SocialMedia)
	}
	return &UserSummary{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Image:       u.Image,
		SocialMedia: social,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

func toCategoryDTO(c *category.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Prefix: c.Prefix, IsDevice: c.IsDevice}
}

func toAssetRef(a *asset.Asset) *AssetRefDTO {
	if a == nil {
		return nil
	}
	return &AssetRefDTO{
		ID:            a.ID,
		Name:          a.Name,
		Code:          a.Code,
		SerialNumber:  a.SerialNumber,
		IsMaintenance: a.IsMaintenance,
		Image:         a.Image,
		Category:      toCategoryDTO(a.Category),
	}
}

func toSignatureDTO(f *timefmt.Formatter, s domain.Signature) SignatureDTO {
	return SignatureDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Image:     s.Image,
		SignedAt:  f.DateTimePtr(s.SignedAt),
		PositionX: s.PositionX,
		PositionY: s.PositionY,
		User:      toUserSummary(s.User),
	}
}

func toApprovalAssetDTO(a domain.Asset) ApprovalAssetDTO {
	return ApprovalAssetDTO{
		ID:            a.ID,
		AssetID:       a.AssetID,
		Name:          a.Name,
		SerialNumber:  a.SerialNumber,
		IsMaintenance: a.IsMaintenance,
		Image:         a.Image,
		CategoryID:    a.CategoryID,
		Asset:         toAssetRef(a.Asset),
		Category:      toCategoryDTO(a.Category),
	}
}

func toDTO(f *timefmt.Formatter, a *domain.Approval) *ApprovalDTO {
	out := &ApprovalDTO{
		ID:             a.ID,
		SubmissionType: a.SubmissionType,
		Status:         a.Status,
		Notes:          a.Notes,
		CreatedByID:    a.CreatedByID,
		RequestedForID: a.RequestedForID,
		CreatedBy:      toUserSummary(a.CreatedBy),
		RequestedFor:   toUserSummary(a.RequestedFor),
		Signatures:     make([]SignatureDTO, 0, len(a.Signatures)),
		Assets:         make([]ApprovalAssetDTO, 0, len(a.Assets)),
		CreatedAt:      f.DateTime(a.CreatedAt),
		UpdatedAt:      f.DateTime(a.UpdatedAt),
	}
	for _, s := range a.Signatures {
		out.Signatures = append(out.Signatures, toSignatureDTO(f, s))
	}
	for _, as := range a.Assets {
		out.Assets = append(out.Assets, toApprovalAssetDTO(as))
	}
	return out
}

func toApprover(u user.User) ApproverDTO {
	return ApproverDTO{ID: u.ID, FullName: u.FullName(), Email: u.Email, Role: u.Role}
}
