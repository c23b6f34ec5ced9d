package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/internal/testutil/approvalmock"
	"asset-approval-backend/internal/testutil/historymock"
	"asset-approval-backend/internal/testutil/uowmock"
	"asset-approval-backend/internal/testutil/usermock"
	ucApproval "asset-approval-backend/internal/usecase/approval"
	"asset-approval-backend/pkg/timefmt"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var staff = user.Actor{ID: "u-staff", Email: "staff@example.com", Role: user.RoleStaff}

type approvalFixture struct {
	approvals *approvalmock.Repo
	users     *usermock.Repo
	e         *echo.Echo
}

// newApprovalFixture routes every approval endpoint for actor.
func newApprovalFixture(actor user.Actor) *approvalFixture {
	f := &approvalFixture{
		approvals: &approvalmock.Repo{},
		users: &usermock.Repo{
			FindByIDFn: func(_ context.Context, id string) (*user.User, error) {
				return &user.User{ID: id, FirstName: "Sam", Email: actor.Email, Role: actor.Role}, nil
			},
		},
		e: newTestEcho(),
	}
	repos := uow.Repos{Approvals: f.approvals, Users: f.users, Histories: &historymock.Repo{}}
	uc := ucApproval.NewUsecase(f.approvals, f.users, uowmock.Passthrough(repos), timefmt.New(timefmt.DefaultZone))
	h := NewApprovalHandler(uc)

	g := f.e.Group("/api/approval", as(actor))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/detail/:id", h.Detail)
	g.GET("/signature-reviewed-position/:id", h.ReviewedPosition)
	g.GET("/get-previous-signature", h.PreviousSignature)
	g.GET("/getApprovers", h.Approvers)
	g.PUT("/update-status/:id", h.UpdateStatus)
	g.PUT("/update-position/:id", h.UpdatePosition)
	g.POST("/sign-approval/:id", h.Sign)
	g.DELETE("/:id", h.Delete)
	return f
}

func TestApprovalCreate_NonGAGetsShell(t *testing.T) {
	f := newApprovalFixture(staff)
	var created *domain.Approval
	f.approvals.CreateFn = func(_ context.Context, a *domain.Approval) error { created = a; return nil }
	f.approvals.CreateSignatureFn = func(context.Context, *domain.Signature) error {
		t.Fatal("nested signature must not be written for a non-GA creator")
		return nil
	}

	rec, env := do(t, f.e, http.MethodPost, "/api/approval",
		`{"submissionType":"ASSIGNMENT","notes":"new laptop","signatures":[{"email":"lead@example.com"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.True(t, env.Success)

	var dto ucApproval.ApprovalDTO
	decodeData(t, env, &dto)
	require.Equal(t, domain.StatusDraft, dto.Status)
	require.Equal(t, staff.ID, dto.CreatedByID)
	require.Empty(t, dto.Signatures)
	require.NotNil(t, created)
	require.Equal(t, "new laptop", *created.Notes)
}

func TestApprovalCreate_ValidationErrors(t *testing.T) {
	f := newApprovalFixture(staff)
	rec, env := do(t, f.e, http.MethodPost, "/api/approval",
		`{"submissionType":"LOAN","signatures":[{"email":"nope"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	decodeData(t, env, &fields)
	require.Contains(t, fields, "submissionType")
	require.Contains(t, fields, "signatures.0.email")
}

func TestApprovalCreate_BrokenJSON(t *testing.T) {
	f := newApprovalFixture(staff)
	rec, env := do(t, f.e, http.MethodPost, "/api/approval", `{"submissionType":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid request body", env.Message)
}

func TestApprovalCreate_RequiresActor(t *testing.T) {
	e := newTestEcho()
	e.POST("/api/approval", NewApprovalHandler(nil).Create)
	rec, _ := do(t, e, http.MethodPost, "/api/approval", `{"submissionType":"ASSIGNMENT"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApprovalList_PassesQueryAndMeta(t *testing.T) {
	f := newApprovalFixture(staff)
	var got domain.ListQuery
	f.approvals.ListFn = func(_ context.Context, q domain.ListQuery) ([]domain.Approval, error) {
		got = q
		return []domain.Approval{{ID: "a1", SubmissionType: domain.TypeAssignment, Status: domain.StatusDraft}}, nil
	}
	f.approvals.CountFn = func(context.Context, domain.ListQuery) (int64, error) { return 11, nil }

	rec, env := do(t, f.e, http.MethodGet, "/api/approval?page=2&limit=5&keyword=lap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, got.Page)
	require.Equal(t, 5, got.Size)
	require.Equal(t, "lap", got.Search)
	require.NotNil(t, env.Meta)
	require.Equal(t, int64(11), env.Meta.Total)
	require.Equal(t, 3, env.Meta.TotalPages)
}

func TestApprovalDetail_NotFound(t *testing.T) {
	f := newApprovalFixture(staff)
	rec, env := do(t, f.e, http.MethodGet, "/api/approval/detail/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, env.Success)
	require.NotEmpty(t, env.TraceID)
}

func TestApprovalUpdateStatus_InvalidTransition(t *testing.T) {
	f := newApprovalFixture(staff)
	f.approvals.FindByIDForUpdateFn = func(_ context.Context, id string) (*domain.Approval, error) {
		return &domain.Approval{ID: id, Status: domain.StatusDone}, nil
	}
	rec, _ := do(t, f.e, http.MethodPut, "/api/approval/update-status/a1", `{"status":"DRAFT"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, f.e, http.MethodPut, "/api/approval/update-status/a1", `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprovalUpdatePosition_RequiresCoordinates(t *testing.T) {
	f := newApprovalFixture(staff)
	rec, env := do(t, f.e, http.MethodPut, "/api/approval/update-position/a1", `{"signatures":[{"id":"s1","positionY":3}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string][]string
	decodeData(t, env, &fields)
	require.Contains(t, fields, "signatures.0.positionX")

	rec, _ = do(t, f.e, http.MethodPut, "/api/approval/update-position/a1", `{"signatures":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprovalUpdatePosition_WritesAndOpens(t *testing.T) {
	f := newApprovalFixture(staff)
	a := &domain.Approval{ID: "a1", Status: domain.StatusDraft}
	f.approvals.FindByIDForUpdateFn = func(context.Context, string) (*domain.Approval, error) { return a, nil }
	f.approvals.LiveSignaturesFn = func(context.Context, string) ([]domain.Signature, error) {
		return []domain.Signature{{ID: "s1", ApprovalID: "a1"}}, nil
	}
	var placed []float64
	f.approvals.UpdateSignaturePositionFn = func(_ context.Context, id string, x, y float64) error {
		placed = append(placed, x, y)
		return nil
	}
	var status domain.Status
	f.approvals.UpdateStatusFn = func(_ context.Context, _ string, s domain.Status) error { status = s; return nil }
	f.approvals.FindDetailFn = func(context.Context, string) (*domain.Approval, error) { return a, nil }

	rec, _ := do(t, f.e, http.MethodPut, "/api/approval/update-position/a1",
		`{"signatures":[{"id":"s1","positionX":12.5,"positionY":40}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, []float64{12.5, 40}, placed)
	require.Equal(t, domain.StatusWaitingApproval, status)
}

func TestApprovalSign_Guards(t *testing.T) {
	f := newApprovalFixture(staff)
	f.approvals.FindSignatureFn = func(_ context.Context, id string) (*domain.Signature, error) {
		return &domain.Signature{ID: id, ApprovalID: "a1", UserID: strp("someone-else")}, nil
	}
	f.approvals.SignFn = func(context.Context, string, string, time.Time) error {
		t.Fatal("sign must not be written")
		return nil
	}

	rec, _ := do(t, f.e, http.MethodPost, "/api/approval/sign-approval/s1", `{"image":"http://x/uploads/images/signatures/a.png"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := do(t, f.e, http.MethodPost, "/api/approval/sign-approval/s1", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string][]string
	decodeData(t, env, &fields)
	require.Equal(t, []string{"is required"}, fields["image"])

	f.approvals.FindSignatureFn = nil
	rec, _ = do(t, f.e, http.MethodPost, "/api/approval/sign-approval/unknown", `{"image":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprovalSign_BoundSignerByEmail(t *testing.T) {
	f := newApprovalFixture(staff)
	sig := &domain.Signature{ID: "s1", ApprovalID: "a1", Email: strp(staff.Email)}
	a := &domain.Approval{ID: "a1", Status: domain.StatusWaitingApproval}
	f.approvals.FindSignatureFn = func(context.Context, string) (*domain.Signature, error) { return sig, nil }
	f.approvals.FindByIDForUpdateFn = func(context.Context, string) (*domain.Approval, error) { return a, nil }
	f.approvals.SignFn = func(_ context.Context, _ string, image string, at time.Time) error {
		sig.Image, sig.SignedAt = &image, &at
		return nil
	}
	f.approvals.LiveSignaturesFn = func(context.Context, string) ([]domain.Signature, error) {
		return []domain.Signature{*sig}, nil
	}
	f.approvals.UpdateStatusFn = func(_ context.Context, _ string, s domain.Status) error { a.Status = s; return nil }
	f.approvals.FindDetailFn = func(context.Context, string) (*domain.Approval, error) { return a, nil }

	rec, env := do(t, f.e, http.MethodPost, "/api/approval/sign-approval/s1", `{"image":"http://x/sig.png"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dto ucApproval.ApprovalDTO
	decodeData(t, env, &dto)
	require.Equal(t, domain.StatusDone, dto.Status)
}

func TestApprovalPreviousSignature(t *testing.T) {
	f := newApprovalFixture(staff)
	rec, env := do(t, f.e, http.MethodGet, "/api/approval/get-previous-signature", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "null", string(env.Data))

	f.approvals.LatestSignedImageFn = func(_ context.Context, userID string) (*domain.Signature, error) {
		require.Equal(t, staff.ID, userID)
		return &domain.Signature{Image: strp("http://x/prev.png")}, nil
	}
	_, env = do(t, f.e, http.MethodGet, "/api/approval/get-previous-signature", "")
	require.JSONEq(t, `{"image":"http://x/prev.png"}`, string(env.Data))
}

func TestApprovalReviewedPosition(t *testing.T) {
	f := newApprovalFixture(staff)
	x := 1.0
	f.approvals.FindDetailFn = func(_ context.Context, id string) (*domain.Approval, error) {
		return &domain.Approval{ID: id, CreatedByID: staff.ID, Signatures: []domain.Signature{{ID: "s1", PositionX: &x, PositionY: &x}}}, nil
	}
	rec, env := do(t, f.e, http.MethodGet, "/api/approval/signature-reviewed-position/a1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"isReviewed":true}`, string(env.Data))

	f.approvals.FindDetailFn = nil
	rec, _ = do(t, f.e, http.MethodGet, "/api/approval/signature-reviewed-position/a1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprovalDetail_HiddenFromUnrelatedUsers(t *testing.T) {
	mgr := "u-mgr"
	a := &domain.Approval{
		ID:          "a1",
		CreatedByID: "u-other",
		Status:      domain.StatusWaitingApproval,
		Signatures:  []domain.Signature{{ID: "s1", ApprovalID: "a1", UserID: &mgr}},
	}
	tests := []struct {
		name  string
		actor user.Actor
		want  int
	}{
		{"unrelated staff", staff, http.StatusNotFound},
		{"bound signer", user.Actor{ID: mgr, Role: user.RoleManager}, http.StatusOK},
		{"general affairs", user.Actor{ID: "u-ga", Role: user.RoleGA}, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newApprovalFixture(tc.actor)
			f.approvals.FindDetailFn = func(context.Context, string) (*domain.Approval, error) {
				cp := *a
				return &cp, nil
			}
			rec, _ := do(t, f.e, http.MethodGet, "/api/approval/detail/a1", "")
			require.Equal(t, tc.want, rec.Code)
			rec, _ = do(t, f.e, http.MethodGet, "/api/approval/signature-reviewed-position/a1", "")
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestApprovalApprovers(t *testing.T) {
	f := newApprovalFixture(staff)
	f.users.FindByRolesFn = func(_ context.Context, roles []user.Role, search string) ([]user.User, error) {
		require.Equal(t, "an", search)
		return []user.User{{ID: "m1", FirstName: "Ana", LastName: "Lee", Email: "ana@example.com", Role: user.RoleManager}}, nil
	}
	rec, env := do(t, f.e, http.MethodGet, "/api/approval/getApprovers?keyword=an", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []ucApproval.ApproverDTO
	decodeData(t, env, &list)
	require.Len(t, list, 1)
	require.Equal(t, "Ana Lee", list[0].FullName)

	rec, _ = do(t, f.e, http.MethodGet, "/api/approval/getApprovers?keyword=a", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprovalDelete(t *testing.T) {
	f := newApprovalFixture(staff)
	f.approvals.FindByIDFn = func(_ context.Context, id string) (*domain.Approval, error) {
		return &domain.Approval{ID: id}, nil
	}
	var deleted string
	f.approvals.SoftDeleteFn = func(_ context.Context, id string) error { deleted = id; return nil }

	rec, env := do(t, f.e, http.MethodDelete, "/api/approval/a9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a9", deleted)
	require.Equal(t, "null", string(env.Data))
}
