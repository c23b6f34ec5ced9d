package asset

import (
	"context"
	"errors"
	"strings"
	"time"

	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/paging"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
	"asset-approval-backend/pkg/timefmt"

	"golang.org/x/sync/errgroup"
)

type Usecase struct {
	assets     asset.Repository
	categories category.Repository
	fmt        *timefmt.Formatter
	now        func() time.Time
}

func NewUsecase(assets asset.Repository, categories category.Repository, f *timefmt.Formatter) *Usecase {
	if f == nil {
		f = timefmt.New(timefmt.DefaultZone)
	}
	return &Usecase{assets: assets, categories: categories, fmt: f, now: time.Now}
}

type Input struct {
	Name          string
	SerialNumber  *string
	IsMaintenance bool
	Image         *string
	CategoryID    string
}

type CategoryDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix"`
	IsDevice bool   `json:"isDevice"`
}

type DTO struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Code          string       `json:"code"`
	SerialNumber  *string      `json:"serialNumber"`
	IsMaintenance bool         `json:"isMaintenance"`
	Image         *string      `json:"image"`
	CategoryID    string       `json:"categoryId"`
	Category      *CategoryDTO `json:"category,omitempty"`
	Quantity      *int64       `json:"quantity,omitempty"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`
}

type ListResult struct {
	Items []DTO
	Meta  paging.Meta
}

type ListInput struct {
	Page   int
	Size   int
	Search string
}

func (u *Usecase) toDTO(a *asset.Asset) DTO {
	out := DTO{
		ID:            a.ID,
		Name:          a.Name,
		Code:          a.Code,
		SerialNumber:  a.SerialNumber,
		IsMaintenance: a.IsMaintenance,
		Image:         a.Image,
		CategoryID:    a.CategoryID,
		CreatedAt:     u.fmt.DateTime(a.CreatedAt),
		UpdatedAt:     u.fmt.DateTime(a.UpdatedAt),
	}
	if c := a.Category; c != nil {
		out.Category = &CategoryDTO{ID: c.ID, Name: c.Name, Prefix: c.Prefix, IsDevice: c.IsDevice}
	}
	return out
}

func normalizeSerial(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// checkSerial rejects a serial number held by another live asset.
func (u *Usecase) checkSerial(ctx context.Context, serial *string, selfID string) error {
	if serial == nil {
		return nil
	}
	other, err := u.assets.FindBySerialNumber(ctx, *serial)
	switch {
	case errors.Is(err, asset.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID == selfID:
		return nil
	}
	return apperror.Conflict("asset serial number already exists", map[string]string{"serialNumber": *serial}).Wrap(asset.ErrSerialNumberTaken)
}

func (u *Usecase) category(ctx context.Context, categoryID string) (*category.Category, error) {
	c, err := u.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, apperror.NotFound("category not found", map[string]string{"categoryId": categoryID}).Wrap(err)
		}
		return nil, err
	}
	return c, nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	c, err := u.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	serial := normalizeSerial(in.SerialNumber)
	if err := u.checkSerial(ctx, serial, ""); err != nil {
		return nil, err
	}

	now := u.now()
	a := &asset.Asset{
		ID:            id.New(),
		Name:          strings.TrimSpace(in.Name),
		Code:          id.AssetCode(c.Prefix, now),
		SerialNumber:  serial,
		IsMaintenance: in.IsMaintenance,
		Image:         in.Image,
		CategoryID:    c.ID,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}
	if err := u.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	a.Category = c
	dto := u.toDTO(a)
	return &dto, nil
}

// GetGrouped lists one row per asset name (the newest) with the live count of that name.
func (u *Usecase) GetGrouped(ctx context.Context, in ListInput) (*ListResult, error) {
	q := asset.ListQuery{Params: paging.New(in.Page, in.Size), Search: in.Search}
	var (
		rows  []asset.Grouped
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rows, err = u.assets.ListGrouped(gctx, q); return })
	g.Go(func() (err error) { total, err = u.assets.CountGroups(gctx, q); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	items := make([]DTO, 0, len(rows))
	for i := range rows {
		dto := u.toDTO(&rows[i].Asset)
		qty := rows[i].Quantity
		dto.Quantity = &qty
		items = append(items, dto)
	}
	return &ListResult{Items: items, Meta: paging.NewMeta(q.Params, total)}, nil
}

func (u *Usecase) GetByName(ctx context.Context, name string, in ListInput) (*ListResult, error) {
	q := asset.ListQuery{Params: paging.New(in.Page, in.Size), Search: in.Search, Name: name}
	var (
		rows  []asset.Asset
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { rows, err = u.assets.ListByName(gctx, q); return })
	g.Go(func() (err error) { total, err = u.assets.CountByName(gctx, q); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	items := make([]DTO, 0, len(rows))
	for i := range rows {
		items = append(items, u.toDTO(&rows[i]))
	}
	return &ListResult{Items: items, Meta: paging.NewMeta(q.Params, total)}, nil
}

func (u *Usecase) Update(ctx context.Context, assetID string, in Input) (*DTO, error) {
	a, err := u.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, notFound(err)
	}
	c, err := u.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	serial := normalizeSerial(in.SerialNumber)
	if err := u.checkSerial(ctx, serial, a.ID); err != nil {
		return nil, err
	}

	a.Name = strings.TrimSpace(in.Name)
	a.SerialNumber = serial
	a.IsMaintenance = in.IsMaintenance
	a.Image = in.Image
	a.CategoryID = c.ID
	a.Category = c
	a.UpdatedAt = u.now().UTC()
	if err := u.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	dto := u.toDTO(a)
	return &dto, nil
}

func (u *Usecase) Delete(ctx context.Context, assetID string) error {
	if _, err := u.assets.FindByID(ctx, assetID); err != nil {
		return notFound(err)
	}
	return u.assets.SoftDelete(ctx, assetID)
}

func notFound(err error) error {
	if errors.Is(err, asset.ErrNotFound) {
		return apperror.NotFound("asset not found", nil).Wrap(err)
	}
	return err
}
