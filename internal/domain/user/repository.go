package user

import (
	"context"

	"asset-approval-backend/internal/domain/paging"
)

type ListQuery struct {
	paging.Params
	Search string
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	// Update persists profile fields (first/last name, image, social media, role).
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id, hash string, activate bool) error
	SoftDelete(ctx context.Context, id string) error

	// Live (non-deleted) lookups; ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context, q ListQuery) ([]User, error)
	Count(ctx context.Context, q ListQuery) (int64, error)

	// FindByRoles returns live users holding one of roles, optionally filtered by a
	// case-insensitive substring of first name, last name or email, ordered by first name.
	FindByRoles(ctx context.Context, roles []Role, search string) ([]User, error)
}
