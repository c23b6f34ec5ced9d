package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/paging"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
	"asset-approval-backend/pkg/timefmt"

	"golang.org/x/sync/errgroup"
)

type Usecase struct {
	repo category.Repository
	fmt  *timefmt.Formatter
}

func NewUsecase(r category.Repository, f *timefmt.Formatter) *Usecase {
	if f == nil {
		f = timefmt.New(timefmt.DefaultZone)
	}
	return &Usecase{repo: r, fmt: f}
}

type Input struct {
	Name     string
	Prefix   string
	IsDevice bool
}

type DTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	IsDevice  bool   `json:"isDevice"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type ListResult struct {
	Items []DTO
	Meta  paging.Meta
}

func (u *Usecase) toDTO(c *category.Category) DTO {
	return DTO{
		ID:        c.ID,
		Name:      c.Name,
		Prefix:    c.Prefix,
		IsDevice:  c.IsDevice,
		CreatedAt: u.fmt.DateTime(c.CreatedAt),
		UpdatedAt: u.fmt.DateTime(c.UpdatedAt),
	}
}

func nameConflict(name string) error {
	return apperror.Conflict("category name already exists", map[string]string{"name": name}).Wrap(category.ErrNameTaken)
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	name := strings.TrimSpace(in.Name)
	switch _, err := u.repo.FindByName(ctx, name); {
	case err == nil:
		return nil, nameConflict(name)
	case !errors.Is(err, category.ErrNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	c := &category.Category{
		ID:        id.New(),
		Name:      name,
		Prefix:    strings.ToUpper(strings.TrimSpace(in.Prefix)),
		IsDevice:  in.IsDevice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := u.toDTO(c)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, page, size int, search string) (*ListResult, error) {
	q := category.ListQuery{Params: paging.New(page, size), Search: search}
	var (
		rows  []category.Category
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rows, err = u.repo.List(gctx, q); return })
	g.Go(func() (err error) { total, err = u.repo.Count(gctx, q); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	items := make([]DTO, 0, len(rows))
	for i := range rows {
		items = append(items, u.toDTO(&rows[i]))
	}
	return &ListResult{Items: items, Meta: paging.NewMeta(q.Params, total)}, nil
}

func (u *Usecase) GetByID(ctx context.Context, categoryID string) (*DTO, error) {
	c, err := u.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, notFound(err)
	}
	dto := u.toDTO(c)
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, categoryID string, in Input) (*DTO, error) {
	c, err := u.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, notFound(err)
	}
	name := strings.TrimSpace(in.Name)
	switch other, err := u.repo.FindByName(ctx, name); {
	case err == nil && other.ID != c.ID:
		return nil, nameConflict(name)
	case err != nil && !errors.Is(err, category.ErrNotFound):
		return nil, err
	}

	c.Name = name
	c.Prefix = strings.ToUpper(strings.TrimSpace(in.Prefix))
	c.IsDevice = in.IsDevice
	c.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := u.toDTO(c)
	return &dto, nil
}

func (u *Usecase) Delete(ctx context.Context, categoryID string) error {
	if _, err := u.repo.FindByID(ctx, categoryID); err != nil {
		return notFound(err)
	}
	return u.repo.SoftDelete(ctx, categoryID)
}

func notFound(err error) error {
	if errors.Is(err, category.ErrNotFound) {
		return apperror.NotFound("category not found", nil).Wrap(err)
	}
	return err
}
