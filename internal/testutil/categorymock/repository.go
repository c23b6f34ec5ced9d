package categorymock

import (
	"context"

	domain "asset-approval-backend/internal/domain/category"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies category.Repository.
// Unset finders report not-found, unset writers succeed.
type Repo struct {
	CreateFn     func(ctx context.Context, c *domain.Category) error
	UpdateFn     func(ctx context.Context, c *domain.Category) error
	SoftDeleteFn func(ctx context.Context, id string) error
	FindByIDFn   func(ctx context.Context, id string) (*domain.Category, error)
	FindByNameFn func(ctx context.Context, name string) (*domain.Category, error)
	ListFn       func(ctx context.Context, q domain.ListQuery) ([]domain.Category, error)
	CountFn      func(ctx context.Context, q domain.ListQuery) (int64, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, c *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.FindByNameFn != nil {
		return m.FindByNameFn(ctx, name)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, q domain.ListQuery) ([]domain.Category, error) {
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
