package historymock

import (
	"context"

	domain "asset-approval-backend/internal/domain/history"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies history.Repository.
// Unset finders report not-found, unset writers succeed.
type Repo struct {
	CreateFn   func(ctx context.Context, h *domain.History) error
	FindAllFn  func(ctx context.Context) ([]domain.History, error)
	FindByIDFn func(ctx context.Context, id string) (*domain.History, error)
}

func (m *Repo) Create(ctx context.Context, h *domain.History) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, h)
	}
	return nil
}

func (m *Repo) FindAll(ctx context.Context) ([]domain.History, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.History, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
