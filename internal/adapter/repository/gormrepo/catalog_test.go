package gormrepo

import (
	"testing"
	"time"

	assetDomain "asset-approval-backend/internal/domain/asset"
	categoryDomain "asset-approval-backend/internal/domain/category"
	historyDomain "asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/paging"
	uploadDomain "asset-approval-backend/internal/domain/upload"
	userDomain "asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/id"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestUser_FindByRoles(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := t.Context()

	seedUser(t, db, "Zaki", "zaki@corp.id", userDomain.RoleManager)
	seedUser(t, db, "Ani", "ani@corp.id", userDomain.RoleLead)
	seedUser(t, db, "Staffy", "staffy@corp.id", userDomain.RoleStaff)
	gone := seedUser(t, db, "Gone", "gone@corp.id", userDomain.RoleGA)
	require.NoError(t, repo.SoftDelete(ctx, gone.ID))

	got, err := repo.FindByRoles(ctx, userDomain.ApproverRoles, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ani", got[0].FirstName)
	require.Equal(t, "Zaki", got[1].FirstName)

	got, err = repo.FindByRoles(ctx, userDomain.ApproverRoles, "ZAK")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "zaki@corp.id", got[0].Email)
}

func TestUser_UpdateProfileAndPassword(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := t.Context()
	u := seedUser(t, db, "Ani", "Ani@Corp.id", userDomain.RoleStaff)

	u.FirstName = "Anita"
	u.SocialMedia = datatypes.JSON(`[{"platform":"linkedin","url":"https://linkedin.com/in/anita"}]`)
	require.NoError(t, repo.Update(ctx, u))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash", true))

	got, err := repo.FindByEmail(ctx, "ani@corp.id")
	require.NoError(t, err)
	require.Equal(t, "Anita", got.FirstName)
	require.Equal(t, "hash", got.Password)
	require.Contains(t, string(got.SocialMedia), "linkedin")

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, userDomain.ErrNotFound)
}

func TestCategory_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := t.Context()

	c := &categoryDomain.Category{ID: id.New(), Name: "Monitor", Prefix: "MON"}
	require.NoError(t, repo.Create(ctx, c))
	seedCategory(t, db, "Laptop", "LPT")

	got, err := repo.FindByName(ctx, "Monitor")
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	items, err := repo.List(ctx, categoryDomain.ListQuery{Params: paging.New(1, 10), Search: "lpt"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.SoftDelete(ctx, c.ID))
	_, err = repo.FindByName(ctx, "Monitor")
	require.ErrorIs(t, err, categoryDomain.ErrNotFound)
	n, err := repo.Count(ctx, categoryDomain.ListQuery{Params: paging.New(1, 10)})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestAsset_ListGroupedAndByName(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssetRepository(db)
	ctx := t.Context()
	cat := seedCategory(t, db, "Laptop", "LPT")
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	seedAsset(t, db, "ThinkPad", cat, base)
	newest := seedAsset(t, db, "ThinkPad", cat, base.Add(10*time.Minute))
	seedAsset(t, db, "MacBook", cat, base.Add(5*time.Minute))

	groups, err := repo.ListGrouped(ctx, assetDomain.ListQuery{Params: paging.New(1, 10)})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, newest.ID, groups[0].ID)
	require.EqualValues(t, 2, groups[0].Quantity)
	require.NotNil(t, groups[0].Category)
	require.EqualValues(t, 1, groups[1].Quantity)

	n, err := repo.CountGroups(ctx, assetDomain.ListQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	byName, err := repo.ListByName(ctx, assetDomain.ListQuery{Params: paging.New(1, 10), Name: "ThinkPad"})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	cnt, err := repo.CountByName(ctx, assetDomain.ListQuery{Name: "ThinkPad"})
	require.NoError(t, err)
	require.EqualValues(t, 2, cnt)
}

func TestAsset_FindBySerialNumber_IgnoresDeleted(t *testing.T) {
	db := openTestDB(t)
	repo := NewAssetRepository(db)
	ctx := t.Context()
	cat := seedCategory(t, db, "Laptop", "LPT")
	a := seedAsset(t, db, "ThinkPad", cat, time.Now())
	a.SerialNumber = strp("SN-1")
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.FindBySerialNumber(ctx, "SN-1")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	require.NoError(t, repo.SoftDelete(ctx, a.ID))
	_, err = repo.FindBySerialNumber(ctx, "SN-1")
	require.ErrorIs(t, err, assetDomain.ErrNotFound)
}

func TestHistory_AppendAndRead(t *testing.T) {
	db := openTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := t.Context()
	u := seedUser(t, db, "Gina", "ga@corp.id", userDomain.RoleGA)

	h := &historyDomain.History{
		ID:            id.New(),
		Type:          historyDomain.TypeAssignment,
		PerformedByID: &u.ID,
		Metadata:      datatypes.JSON(`{"note":"handover"}`),
	}
	require.NoError(t, repo.Create(ctx, h))

	got, err := repo.FindByID(ctx, h.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PerformedBy)
	require.JSONEq(t, `{"note":"handover"}`, string(got.Metadata))

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, historyDomain.ErrNotFound)
}

func TestFile_Create(t *testing.T) {
	db := openTestDB(t)
	f := &uploadDomain.File{ID: id.New(), Filename: "sig.png", MimeType: "image/png", Extension: ".png", Size: 10, URL: "/uploads/x", StorageKey: "images/signatures/x.png", Category: "signatures"}
	require.NoError(t, NewFileRepository(db).Create(t.Context(), f))
	var n int64
	require.NoError(t, db.Model(&uploadDomain.File{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}
