package gormrepo

import (
	"testing"
	"time"

	approvalDomain "asset-approval-backend/internal/domain/approval"
	assetDomain "asset-approval-backend/internal/domain/asset"
	categoryDomain "asset-approval-backend/internal/domain/category"
	userDomain "asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/id"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory sqlite DB pinned to one connection,
// since every new ":memory:" connection would see an empty database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db), "auto-migrate")
	return db
}

func strp(s string) *string { return &s }

func seedUser(t *testing.T, db *gorm.DB, first, email string, role userDomain.Role) *userDomain.User {
	t.Helper()
	u := &userDomain.User{ID: id.New(), FirstName: first, LastName: "Test", Email: email, Password: "x", Role: role, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedCategory(t *testing.T, db *gorm.DB, name, prefix string) *categoryDomain.Category {
	t.Helper()
	c := &categoryDomain.Category{ID: id.New(), Name: name, Prefix: prefix, IsDevice: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedAsset(t *testing.T, db *gorm.DB, name string, cat *categoryDomain.Category, at time.Time) *assetDomain.Asset {
	t.Helper()
	a := &assetDomain.Asset{ID: id.New(), Name: name, Code: id.AssetCode(cat.Prefix, at), CategoryID: cat.ID, CreatedAt: at}
	require.NoError(t, db.Omit("Category").Create(a).Error)
	return a
}

func seedApproval(t *testing.T, db *gorm.DB, creator *userDomain.User, status approvalDomain.Status, notes string) *approvalDomain.Approval {
	t.Helper()
	a := &approvalDomain.Approval{
		ID:             id.New(),
		SubmissionType: approvalDomain.TypeProcurement,
		Status:         status,
		Notes:          strp(notes),
		CreatedByID:    creator.ID,
	}
	require.NoError(t, NewApprovalRepository(db).Create(t.Context(), a))
	return a
}

func seedSignature(t *testing.T, db *gorm.DB, approvalID string, userID *string) *approvalDomain.Signature {
	t.Helper()
	s := &approvalDomain.Signature{ID: id.New(), ApprovalID: approvalID, UserID: userID}
	require.NoError(t, NewApprovalRepository(db).CreateSignature(t.Context(), s))
	return s
}
