package usermock

import (
	"context"

	domain "asset-approval-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies user.Repository.
// Unset finders report not-found, unset writers succeed.
type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	UpdateFn         func(ctx context.Context, u *domain.User) error
	UpdatePasswordFn func(ctx context.Context, id, hash string, activate bool) error
	SoftDeleteFn     func(ctx context.Context, id string) error
	FindByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListFn           func(ctx context.Context, q domain.ListQuery) ([]domain.User, error)
	CountFn          func(ctx context.Context, q domain.ListQuery) (int64, error)
	FindByRolesFn    func(ctx context.Context, roles []domain.Role, search string) ([]domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, u *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}

func (m *Repo) UpdatePassword(ctx context.Context, id, hash string, activate bool) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hash, activate)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, id string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, q domain.ListQuery) ([]domain.User, error) {
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

func (m *Repo) FindByRoles(ctx context.Context, roles []domain.Role, search string) ([]domain.User, error) {
	if m.FindByRolesFn != nil {
		return m.FindByRolesFn(ctx, roles, search)
	}
	return nil, nil
}
