package gormrepo

import (
	"context"
	"strings"

	assetDomain "asset-approval-backend/internal/domain/asset"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *AssetRepository) Update(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Model(&assetDomain.Asset{}).
		Where("id = ? AND is_deleted = ?", a.ID, false).
		Updates(map[string]any{
			"name":           a.Name,
			"serial_number":  a.SerialNumber,
			"is_maintenance": a.IsMaintenance,
			"image":          a.Image,
			"category_id":    a.CategoryID,
		}).Error
}

func (r *AssetRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&assetDomain.Asset{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *AssetRepository) FindByID(ctx context.Context, id string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ? AND is_deleted = ?", id, false).First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, assetDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AssetRepository) FindBySerialNumber(ctx context.Context, serial string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	err := r.db.WithContext(ctx).Where("serial_number = ? AND is_deleted = ?", serial, false).First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, assetDomain.ErrNotFound)
	}
	return &out, nil
}

// live applies the live + search predicate; alias prefixes column names when the query joins.
func live(q *gorm.DB, alias, search string) *gorm.DB {
	p := ""
	if alias != "" {
		p = alias + "."
	}
	q = q.Where(p+"is_deleted = ?", false)
	if strings.TrimSpace(search) != "" {
		like := likeLower(search)
		q = q.Where("(LOWER("+p+"name) LIKE ? OR LOWER("+p+"code) LIKE ? OR LOWER("+p+"serial_number) LIKE ?)", like, like, like)
	}
	return q
}

// ListGrouped returns the newest live asset of every name group with the group size.
func (r *AssetRepository) ListGrouped(ctx context.Context, q assetDomain.ListQuery) ([]assetDomain.Grouped, error) {
	groups := live(r.db.Model(&assetDomain.Asset{}), "", q.Search).
		Select("name, COUNT(*) AS quantity, MAX(created_at) AS latest").
		Group("name")

	var rows []struct {
		ID       string
		Quantity int64
	}
	err := live(r.db.WithContext(ctx).Table("assets AS a"), "a", "").
		Select("a.id AS id, g.quantity AS quantity").
		Joins("JOIN (?) AS g ON g.name = a.name AND g.latest = a.created_at", groups).
		Order("a.created_at DESC").
		Offset(q.Offset()).Limit(q.Size).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var assets []assetDomain.Asset
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]assetDomain.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	out := make([]assetDomain.Grouped, 0, len(rows))
	for _, row := range rows {
		if a, ok := byID[row.ID]; ok {
			out = append(out, assetDomain.Grouped{Asset: a, Quantity: row.Quantity})
		}
	}
	return out, nil
}

func (r *AssetRepository) CountGroups(ctx context.Context, q assetDomain.ListQuery) (int64, error) {
	var n int64
	err := live(r.db.WithContext(ctx).Model(&assetDomain.Asset{}), "", q.Search).Distinct("name").Count(&n).Error
	return n, err
}

func (r *AssetRepository) byName(ctx context.Context, q assetDomain.ListQuery) *gorm.DB {
	return live(r.db.WithContext(ctx).Model(&assetDomain.Asset{}), "", q.Search).Where("name = ?", q.Name)
}

func (r *AssetRepository) ListByName(ctx context.Context, q assetDomain.ListQuery) ([]assetDomain.Asset, error) {
	var out []assetDomain.Asset
	err := r.byName(ctx, q).Preload("Category").Order("created_at DESC").Offset(q.Offset()).Limit(q.Size).Find(&out).Error
	return out, err
}

func (r *AssetRepository) CountByName(ctx context.Context, q assetDomain.ListQuery) (int64, error) {
	var n int64
	err := r.byName(ctx, q).Count(&n).Error
	return n, err
}
