package approval

import (
	"context"
	"time"

	"asset-approval-backend/internal/domain/paging"
)

type ListQuery struct {
	paging.Params
	Search string
	Scope  Scope
}

type Repository interface {
	Create(ctx context.Context, a *Approval) error
	// Update writes the header columns (submission type, status, notes, requested-for).
	Update(ctx context.Context, a *Approval) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	SoftDelete(ctx context.Context, id string) error

	// FindByID returns the live header only; ErrNotFound when absent or deleted.
	FindByID(ctx context.Context, id string) (*Approval, error)
	// FindByIDForUpdate is FindByID taking a row lock where the dialect supports it.
	FindByIDForUpdate(ctx context.Context, id string) (*Approval, error)
	// FindDetail loads the approval with live signatures, live assets and their relations.
	FindDetail(ctx context.Context, id string) (*Approval, error)

	List(ctx context.Context, q ListQuery) ([]Approval, error)
	Count(ctx context.Context, q ListQuery) (int64, error)

	CreateSignature(ctx context.Context, s *Signature) error
	UpdateSignature(ctx context.Context, s *Signature) error
	// FindSignature returns a signature regardless of its deleted flag.
	FindSignature(ctx context.Context, id string) (*Signature, error)
	LiveSignatures(ctx context.Context, approvalID string) ([]Signature, error)
	UpdateSignaturePosition(ctx context.Context, id string, x, y float64) error
	// Sign stores image and signedAt in one write.
	Sign(ctx context.Context, id, image string, at time.Time) error
	// LatestSignedImage returns the most recent signed signature of userID.
	LatestSignedImage(ctx context.Context, userID string) (*Signature, error)

	CreateAsset(ctx context.Context, a *Asset) error
	UpdateAsset(ctx context.Context, a *Asset) error
	FindAsset(ctx context.Context, id string) (*Asset, error)
}
