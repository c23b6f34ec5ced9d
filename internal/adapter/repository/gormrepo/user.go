package gormrepo

import (
	"context"
	"strings"

	userDomain "asset-approval-backend/internal/domain/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).
		Where("id = ? AND is_deleted = ?", u.ID, false).
		Updates(map[string]any{
			"first_name":   u.FirstName,
			"last_name":    u.LastName,
			"image":        u.Image,
			"social_media": u.SocialMedia,
			"role":         u.Role,
		}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string, activate bool) error {
	cols := map[string]any{"password": hash}
	if activate {
		cols["is_active"] = true
	}
	return r.db.WithContext(ctx).Model(&userDomain.User{}).Where("id = ?", id).Updates(cols).Error
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&userDomain.User{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(email)), false).
		First(&out).Error
	if err != nil {
		return nil, mapNotFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) filtered(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("is_deleted = ?", false)
	if strings.TrimSpace(search) != "" {
		like := likeLower(search)
		q = q.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	return q
}

func (r *UserRepository) List(ctx context.Context, q userDomain.ListQuery) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.filtered(ctx, q.Search).
		Order("created_at DESC").
		Offset(q.Offset()).Limit(q.Size).
		Find(&out).Error
	return out, err
}

func (r *UserRepository) Count(ctx context.Context, q userDomain.ListQuery) (int64, error) {
	var n int64
	err := r.filtered(ctx, q.Search).Count(&n).Error
	return n, err
}

func (r *UserRepository) FindByRoles(ctx context.Context, roles []userDomain.Role, search string) ([]userDomain.User, error) {
	var out []userDomain.User
	err := r.filtered(ctx, search).
		Where("role IN ?", roles).
		Order("first_name ASC").
		Find(&out).Error
	return out, err
}
