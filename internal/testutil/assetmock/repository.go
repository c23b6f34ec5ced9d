package assetmock

import (
	"context"

	domain "asset-approval-backend/internal/domain/asset"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies asset.Repository.
// Unset finders report not-found, unset writers succeed.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Asset) error
	UpdateFn             func(ctx context.Context, a *domain.Asset) error
	SoftDeleteFn         func(ctx context.Context, id string) error
	FindByIDFn           func(ctx context.Context, id string) (*domain.Asset, error)
	FindBySerialNumberFn func(ctx context.Context, serial string) (*domain.Asset, error)
	ListGroupedFn        func(ctx context.Context, q domain.ListQuery) ([]domain.Grouped, error)
	CountGroupsFn        func(ctx context.Context, q domain.ListQuery) (int64, error)
	ListByNameFn         func(ctx context.Context, q domain.ListQuery) ([]domain.Asset, error)
	CountByNameFn        func(ctx context.Context, q domain.ListQuery) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Asset) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, a *domain.Asset) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, a)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.Asset, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindBySerialNumber(ctx context.Context, serial string) (*domain.Asset, error) {
	if m.FindBySerialNumberFn != nil {
		return m.FindBySerialNumberFn(ctx, serial)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListGrouped(ctx context.Context, q domain.ListQuery) ([]domain.Grouped, error) {
	if m.ListGroupedFn != nil {
		return m.ListGroupedFn(ctx, q)
	}
	return nil, nil
}

func (m *Repo) CountGroups(ctx context.Context, q domain.ListQuery) (int64, error) {
	if m.CountGroupsFn != nil {
		return m.CountGroupsFn(ctx, q)
	}
	return 0, nil
}

func (m *Repo) ListByName(ctx context.Context, q domain.ListQuery) ([]domain.Asset, error) {
	if m.ListByNameFn != nil {
		return m.ListByNameFn(ctx, q)
	}
	return nil, nil
}

func (m *Repo) CountByName(ctx context.Context, q domain.ListQuery) (int64, error) {
	if m.CountByNameFn != nil {
		return m.CountByNameFn(ctx, q)
	}
	return 0, nil
}
