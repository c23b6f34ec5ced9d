package asset

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/testutil/assetmock"
	"asset-approval-backend/internal/testutil/categorymock"
	"asset-approval-backend/pkg/apperror"
)

func strp(s string) *string { return &s }

func laptopCategories() *categorymock.Repo {
	return &categorymock.Repo{
		FindByIDFn: func(_ context.Context, id string) (*category.Category, error) {
			if id == "cat-lpt" {
				return &category.Category{ID: id, Name: "Laptop", Prefix: "LPT", IsDevice: true}, nil
			}
			return nil, category.ErrNotFound
		},
	}
}

func TestCreate_GeneratesCode(t *testing.T) {
	var saved *asset.Asset
	assets := &assetmock.Repo{CreateFn: func(_ context.Context, a *asset.Asset) error { saved = a; return nil }}
	uc := NewUsecase(assets, laptopCategories(), nil)
	uc.now = func() time.Time { return time.Date(2025, 10, 2, 9, 30, 15, 123_000_000, time.UTC) }

	dto, err := uc.Create(context.Background(), Input{Name: "ThinkPad", SerialNumber: strp(" SN-1 "), CategoryID: "cat-lpt"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !regexp.MustCompile(`^LPT-20251002093015123-[0-9A-Z]{3}$`).MatchString(saved.Code) {
		t.Fatalf("code = %q", saved.Code)
	}
	if *saved.SerialNumber != "SN-1" {
		t.Fatalf("serial not trimmed: %q", *saved.SerialNumber)
	}
	if dto.Category == nil || dto.Category.Prefix != "LPT" {
		t.Fatalf("dto category = %+v", dto.Category)
	}
}

func TestCreate_Errors(t *testing.T) {
	taken := &assetmock.Repo{
		FindBySerialNumberFn: func(_ context.Context, s string) (*asset.Asset, error) {
			return &asset.Asset{ID: "other", SerialNumber: &s}, nil
		},
	}
	uc := NewUsecase(taken, laptopCategories(), nil)

	_, err := uc.Create(context.Background(), Input{Name: "X", SerialNumber: strp("SN-1"), CategoryID: "cat-lpt"})
	if apperror.KindOf(err) != apperror.KindConflict || !errors.Is(err, asset.ErrSerialNumberTaken) {
		t.Fatalf("duplicate serial: got %v", err)
	}

	_, err = uc.Create(context.Background(), Input{Name: "X", CategoryID: "nope"})
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("missing category: got %v", err)
	}

	// no serial means no uniqueness lookup
	if _, err := uc.Create(context.Background(), Input{Name: "X", SerialNumber: strp("  "), CategoryID: "cat-lpt"}); err != nil {
		t.Fatalf("blank serial: %v", err)
	}
}

func TestUpdate_SameSerialAllowed(t *testing.T) {
	current := &asset.Asset{ID: "a1", Name: "Old", SerialNumber: strp("SN-1"), CategoryID: "cat-lpt"}
	var updated *asset.Asset
	assets := &assetmock.Repo{
		FindByIDFn: func(_ context.Context, id string) (*asset.Asset, error) {
			if id == "a1" {
				cp := *current
				return &cp, nil
			}
			return nil, asset.ErrNotFound
		},
		FindBySerialNumberFn: func(context.Context, string) (*asset.Asset, error) { return current, nil },
		UpdateFn:             func(_ context.Context, a *asset.Asset) error { updated = a; return nil },
	}
	uc := NewUsecase(assets, laptopCategories(), nil)

	if _, err := uc.Update(context.Background(), "a1", Input{Name: "New", SerialNumber: strp("SN-1"), CategoryID: "cat-lpt"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "New" {
		t.Fatalf("updated = %+v", updated)
	}

	_, err := uc.Update(context.Background(), "missing", Input{CategoryID: "cat-lpt"})
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestGetGrouped_CarriesQuantity(t *testing.T) {
	assets := &assetmock.Repo{
		ListGroupedFn: func(context.Context, asset.ListQuery) ([]asset.Grouped, error) {
			return []asset.Grouped{{Asset: asset.Asset{ID: "a1", Name: "ThinkPad"}, Quantity: 3}}, nil
		},
		CountGroupsFn: func(context.Context, asset.ListQuery) (int64, error) { return 1, nil },
	}
	res, err := NewUsecase(assets, laptopCategories(), nil).GetGrouped(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("GetGrouped: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Quantity == nil || *res.Items[0].Quantity != 3 {
		t.Fatalf("items = %+v", res.Items)
	}
}

func TestGetByName_PassesName(t *testing.T) {
	var got asset.ListQuery
	assets := &assetmock.Repo{
		ListByNameFn: func(_ context.Context, q asset.ListQuery) ([]asset.Asset, error) { got = q; return nil, nil },
	}
	res, err := NewUsecase(assets, laptopCategories(), nil).GetByName(context.Background(), "ThinkPad", ListInput{Page: 2})
	if err != nil || got.Name != "ThinkPad" || res.Meta.Page != 2 {
		t.Fatalf("q=%+v res=%+v err=%v", got, res, err)
	}
}
