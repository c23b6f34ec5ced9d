package asset

import (
	"context"

	"asset-approval-backend/internal/domain/paging"
)

type ListQuery struct {
	paging.Params
	Search string
	// Name restricts the listing to one exact name; empty lists name groups.
	Name string
}

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	Update(ctx context.Context, a *Asset) error
	SoftDelete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Asset, error)
	// FindBySerialNumber matches live assets only.
	FindBySerialNumber(ctx context.Context, serial string) (*Asset, error)

	ListGrouped(ctx context.Context, q ListQuery) ([]Grouped, error)
	CountGroups(ctx context.Context, q ListQuery) (int64, error)
	ListByName(ctx context.Context, q ListQuery) ([]Asset, error)
	CountByName(ctx context.Context, q ListQuery) (int64, error)
}
