package gormrepo

import (
	"context"
	"strings"
	"time"

	approvalDomain "asset-approval-backend/internal/domain/approval"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *ApprovalRepository) Update(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Approval{}).
		Where("id = ? AND is_deleted = ?", a.ID, false).
		Updates(map[string]any{
			"submission_type":  a.SubmissionType,
			"status":           a.Status,
			"notes":            a.Notes,
			"requested_for_id": a.RequestedForID,
		}).Error
}

func (r *ApprovalRepository) UpdateStatus(ctx context.Context, id string, status approvalDomain.Status) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Approval{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ApprovalRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Approval{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *ApprovalRepository) FindByID(ctx context.Context, id string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	if err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&out).Error; err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

// FindByIDForUpdate takes SELECT ... FOR UPDATE; sqlite ignores the locking clause.
func (r *ApprovalRepository) FindByIDForUpdate(ctx context.Context, id string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func liveOrdered(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false).Order("created_at ASC")
}

func (r *ApprovalRepository) FindDetail(ctx context.Context, id string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("RequestedFor").
		Preload("Signatures", liveOrdered).
		Preload("Signatures.User").
		Preload("Assets", liveOrdered).
		Preload("Assets.Asset").
		Preload("Assets.Asset.Category").
		Preload("Assets.Category").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) filtered(ctx context.Context, q approvalDomain.ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&approvalDomain.Approval{}).Where("approvals.is_deleted = ?", false)
	if !q.Scope.All {
		uid := q.Scope.UserID
		tx = tx.Where(`(approvals.created_by_id = ? OR approvals.requested_for_id = ? OR EXISTS (
			SELECT 1 FROM approval_signatures s
			WHERE s.approval_id = approvals.id AND s.user_id = ? AND s.is_deleted = ?))`,
			uid, uid, uid, false)
	}
	if kw := strings.TrimSpace(q.Search); kw != "" {
		upper := "%" + strings.ToUpper(kw) + "%"
		tx = tx.Where("(approvals.submission_type LIKE ? OR approvals.status LIKE ? OR approvals.notes LIKE ?)",
			upper, upper, "%"+kw+"%")
	}
	return tx
}

func (r *ApprovalRepository) List(ctx context.Context, q approvalDomain.ListQuery) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	err := r.filtered(ctx, q).
		Preload("CreatedBy").
		Preload("RequestedFor").
		Order("approvals.created_at DESC").
		Offset(q.Offset()).Limit(q.Size).
		Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) Count(ctx context.Context, q approvalDomain.ListQuery) (int64, error) {
	var n int64
	err := r.filtered(ctx, q).Count(&n).Error
	return n, err
}

// --- signatures ---

func (r *ApprovalRepository) CreateSignature(ctx context.Context, s *approvalDomain.Signature) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

// UpdateSignature writes the editable slot columns only; signing state and position are untouched.
func (r *ApprovalRepository) UpdateSignature(ctx context.Context, s *approvalDomain.Signature) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Signature{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"user_id":    s.UserID,
			"name":       s.Name,
			"email":      s.Email,
			"is_deleted": s.IsDeleted,
		}).Error
}

func (r *ApprovalRepository) FindSignature(ctx context.Context, id string) (*approvalDomain.Signature, error) {
	var out approvalDomain.Signature
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrSignatureNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) LiveSignatures(ctx context.Context, approvalID string) ([]approvalDomain.Signature, error) {
	var out []approvalDomain.Signature
	err := liveOrdered(r.db.WithContext(ctx).Where("approval_id = ?", approvalID)).Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) UpdateSignaturePosition(ctx context.Context, id string, x, y float64) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Signature{}).
		Where("id = ?", id).
		Updates(map[string]any{"position_x": x, "position_y": y}).Error
}

func (r *ApprovalRepository) Sign(ctx context.Context, id, image string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Signature{}).
		Where("id = ?", id).
		Updates(map[string]any{"image": image, "signed_at": at}).Error
}

// LatestSignedImage only considers live signatures on live DONE approvals.
func (r *ApprovalRepository) LatestSignedImage(ctx context.Context, userID string) (*approvalDomain.Signature, error) {
	var out approvalDomain.Signature
	err := r.db.WithContext(ctx).
		Select("approval_signatures.*").
		Joins("JOIN approvals ON approvals.id = approval_signatures.approval_id").
		Where("approval_signatures.user_id = ? AND approval_signatures.is_deleted = ?", userID, false).
		Where("approval_signatures.image IS NOT NULL AND approval_signatures.signed_at IS NOT NULL").
		Where("approvals.is_deleted = ? AND approvals.status = ?", false, approvalDomain.StatusDone).
		Order("approval_signatures.signed_at DESC").
		First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrSignatureNotFound)
	}
	return &out, nil
}

// --- assets ---

func (r *ApprovalRepository) CreateAsset(ctx context.Context, a *approvalDomain.Asset) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *ApprovalRepository) UpdateAsset(ctx context.Context, a *approvalDomain.Asset) error {
	return r.db.WithContext(ctx).Model(&approvalDomain.Asset{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"asset_id":       a.AssetID,
			"name":           a.Name,
			"serial_number":  a.SerialNumber,
			"is_maintenance": a.IsMaintenance,
			"image":          a.Image,
			"category_id":    a.CategoryID,
			"is_deleted":     a.IsDeleted,
		}).Error
}

func (r *ApprovalRepository) FindAsset(ctx context.Context, id string) (*approvalDomain.Asset, error) {
	var out approvalDomain.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, mapNotFound(err, approvalDomain.ErrAssetNotFound)
	}
	return &out, nil
}
