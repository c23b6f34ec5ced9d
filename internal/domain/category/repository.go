package category

import (
	"context"

	"asset-approval-backend/internal/domain/paging"
)

type ListQuery struct {
	paging.Params
	Search string
}

type Repository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	SoftDelete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Category, error)
	// FindByName matches live categories only.
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, q ListQuery) ([]Category, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
}
