package approvalmock

import (
	"context"
	"time"

	domain "asset-approval-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies approval.Repository.
// Unset finders report not-found, unset writers succeed.
type Repo struct {
	CreateFn                  func(ctx context.Context, a *domain.Approval) error
	UpdateFn                  func(ctx context.Context, a *domain.Approval) error
	UpdateStatusFn            func(ctx context.Context, id string, status domain.Status) error
	SoftDeleteFn              func(ctx context.Context, id string) error
	FindByIDFn                func(ctx context.Context, id string) (*domain.Approval, error)
	FindByIDForUpdateFn       func(ctx context.Context, id string) (*domain.Approval, error)
	FindDetailFn              func(ctx context.Context, id string) (*domain.Approval, error)
	ListFn                    func(ctx context.Context, q domain.ListQuery) ([]domain.Approval, error)
	CountFn                   func(ctx context.Context, q domain.ListQuery) (int64, error)
	CreateSignatureFn         func(ctx context.Context, s *domain.Signature) error
	UpdateSignatureFn         func(ctx context.Context, s *domain.Signature) error
	FindSignatureFn           func(ctx context.Context, id string) (*domain.Signature, error)
	LiveSignaturesFn          func(ctx context.Context, approvalID string) ([]domain.Signature, error)
	UpdateSignaturePositionFn func(ctx context.Context, id string, x, y float64) error
	SignFn                    func(ctx context.Context, id, image string, at time.Time) error
	LatestSignedImageFn       func(ctx context.Context, userID string) (*domain.Signature, error)
	CreateAssetFn             func(ctx context.Context, a *domain.Asset) error
	UpdateAssetFn             func(ctx context.Context, a *domain.Asset) error
	FindAssetFn               func(ctx context.Context, id string) (*domain.Asset, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, a *domain.Approval) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, a)
	}
	return nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.Approval, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindByIDForUpdate(ctx context.Context, id string) (*domain.Approval, error) {
	if m.FindByIDForUpdateFn != nil {
		return m.FindByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindDetail(ctx context.Context, id string) (*domain.Approval, error) {
	if m.FindDetailFn != nil {
		return m.FindDetailFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, q domain.ListQuery) ([]domain.Approval, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context, q domain.ListQuery) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	return 0, nil
}

func (m *Repo) CreateSignature(ctx context.Context, s *domain.Signature) error {
	if m.CreateSignatureFn != nil {
		return m.CreateSignatureFn(ctx, s)
	}
	return nil
}

func (m *Repo) UpdateSignature(ctx context.Context, s *domain.Signature) error {
	if m.UpdateSignatureFn != nil {
		return m.UpdateSignatureFn(ctx, s)
	}
	return nil
}

func (m *Repo) FindSignature(ctx context.Context, id string) (*domain.Signature, error) {
	if m.FindSignatureFn != nil {
		return m.FindSignatureFn(ctx, id)
	}
	return nil, domain.ErrSignatureNotFound
}

func (m *Repo) LiveSignatures(ctx context.Context, approvalID string) ([]domain.Signature, error) {
	if m.LiveSignaturesFn != nil {
		return m.LiveSignaturesFn(ctx, approvalID)
	}
	return nil, nil
}

func (m *Repo) UpdateSignaturePosition(ctx context.Context, id string, x, y float64) error {
	if m.UpdateSignaturePositionFn != nil {
		return m.UpdateSignaturePositionFn(ctx, id, x, y)
	}
	return nil
}

func (m *Repo) Sign(ctx context.Context, id, image string, at time.Time) error {
	if m.SignFn != nil {
		return m.SignFn(ctx, id, image, at)
	}
	return nil
}

func (m *Repo) LatestSignedImage(ctx context.Context, userID string) (*domain.Signature, error) {
	if m.LatestSignedImageFn != nil {
		return m.LatestSignedImageFn(ctx, userID)
	}
	return nil, domain.ErrSignatureNotFound
}

func (m *Repo) CreateAsset(ctx context.Context, a *domain.Asset) error {
	if m.CreateAssetFn != nil {
		return m.CreateAssetFn(ctx, a)
	}
	return nil
}

func (m *Repo) UpdateAsset(ctx context.Context, a *domain.Asset) error {
	if m.UpdateAssetFn != nil {
		return m.UpdateAssetFn(ctx, a)
	}
	return nil
}

func (m *Repo) FindAsset(ctx context.Context, id string) (*domain.Asset, error) {
	if m.FindAssetFn != nil {
		return m.FindAssetFn(ctx, id)
	}
	return nil, domain.ErrAssetNotFound
}
