package history

import "context"

type Repository interface {
	Create(ctx context.Context, h *History) error
	// FindAll returns every entry, newest first, with asset, approval and actor loaded.
	FindAll(ctx context.Context) ([]History, error)
	FindByID(ctx context.Context, id string) (*History, error)
}
