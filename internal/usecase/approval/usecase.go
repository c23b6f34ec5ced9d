package approval

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/paging"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
	"asset-approval-backend/pkg/timefmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// TransitionObserver is notified after every persisted status change.
type TransitionObserver func(from, to domain.Status)

type Usecase struct {
	approvals domain.Repository
	users     user.Repository
	uow       uow.UnitOfWork
	fmt       *timefmt.Formatter
	now       func() time.Time
	observe   TransitionObserver
	log       *logrus.Entry
}

func NewUsecase(approvals domain.Repository, users user.Repository, tx uow.UnitOfWork, f *timefmt.Formatter) *Usecase {
	if f == nil {
		f = timefmt.New(timefmt.DefaultZone)
	}
	return &Usecase{
		approvals: approvals,
		users:     users,
		uow:       tx,
		fmt:       f,
		now:       time.Now,
		observe:   func(domain.Status, domain.Status) {},
		log:       logrus.WithField("component", "approval"),
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) WithTransitionObserver(fn TransitionObserver) *Usecase {
	if fn != nil {
		u.observe = fn
	}
	return u
}

func (u *Usecase) WithLogger(l *logrus.Entry) *Usecase {
	u.log = l
	return u
}

// notFound maps repository sentinels to 404s; errors already shaped by the usecase pass through.
func notFound(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("approval not found", nil).Wrap(err)
	case errors.Is(err, domain.ErrSignatureNotFound):
		return apperror.NotFound("signature not found", nil).Wrap(err)
	case errors.Is(err, domain.ErrAssetNotFound):
		return apperror.NotFound("approval asset not found", nil).Wrap(err)
	case errors.Is(err, user.ErrNotFound):
		return apperror.NotFound("user not found", nil).Wrap(err)
	}
	return err
}

func newHistory(t history.Type, approvalID, actorID, desc string, meta map[string]any) *history.History {
	h := &history.History{ID: id.New(), Type: t, ApprovalID: &approvalID}
	if actorID != "" {
		h.PerformedByID = &actorID
	}
	if desc != "" {
		h.Description = &desc
	}
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			h.Metadata = datatypes.JSON(raw)
		}
	}
	return h
}

// setStatus persists a status change and records it; callers have already checked the transition.
func (u *Usecase) setStatus(ctx context.Context, r uow.Repos, a *domain.Approval, to domain.Status, actorID string) error {
	from := a.Status
	if from == to {
		return nil
	}
	if err := r.Approvals.UpdateStatus(ctx, a.ID, to); err != nil {
		return err
	}
	h := newHistory(history.TypeStatusChanged, a.ID, actorID, "", map[string]any{"from": from, "to": to})
	if err := r.Histories.Create(ctx, h); err != nil {
		return err
	}
	a.Status = to
	u.observe(from, to)
	return nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApprovalDTO, error) {
	if !in.SubmissionType.Valid() {
		return nil, apperror.Validation("invalid submission type", nil)
	}
	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if status != domain.StatusDraft && status != domain.StatusWaitingApproval {
		return nil, apperror.Validation("initial status must be DRAFT or WAITING_APPROVAL", nil)
	}

	var out *domain.Approval
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		creator, err := r.Users.FindByID(ctx, in.CreatedByID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return apperror.NotFound("creator not found", nil).Wrap(err)
			}
			return err
		}
		if err := checkUser(ctx, r, in.RequestedForID); err != nil {
			return err
		}

		a := &domain.Approval{
			ID:             id.New(),
			SubmissionType: in.SubmissionType,
			Status:         status,
			Notes:          in.Notes,
			CreatedByID:    creator.ID,
			RequestedForID: emptyToNil(in.RequestedForID),
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}
		a.Signatures = []domain.Signature{}
		a.Assets = []domain.Asset{}

		switch d := domain.AuthorizeNestedWrites(creator).(type) {
		case domain.Allowed:
			sigs, err := upsertSignatures(ctx, r, a, newSignatureEntries(in.Signatures))
			if err != nil {
				return err
			}
			assets, err := upsertAssets(ctx, r, a.ID, newAssetEntries(in.Assets))
			if err != nil {
				return err
			}
			a.Signatures, a.Assets = sigs, assets
		case domain.Denied:
			if len(in.Signatures) > 0 || len(in.Assets) > 0 {
				u.log.WithFields(logrus.Fields{"approval_id": a.ID, "creator_id": creator.ID}).
					Infof("nested writes dropped: %s", d.Reason)
			}
		}

		h := newHistory(history.TypeApprovalCreated, a.ID, creator.ID, "", map[string]any{
			"submissionType": a.SubmissionType,
			"status":         a.Status,
			"signatures":     len(a.Signatures),
			"assets":         len(a.Assets),
		})
		if err := r.Histories.Create(ctx, h); err != nil {
			return err
		}
		if a.Status != domain.StatusDraft {
			u.observe(domain.StatusDraft, a.Status)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toDTO(u.fmt, out), nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*ApprovalDTO, error) {
	if !in.SubmissionType.Valid() {
		return nil, apperror.Validation("invalid submission type", nil)
	}
	err := u.uow.WithinApprovalTx(ctx, in.ID, func(r uow.Repos, a *domain.Approval) error {
		if in.SubmissionType != a.SubmissionType && a.Status != domain.StatusDraft {
			return apperror.Conflict("submission type can only change while the approval is DRAFT", nil).Wrap(domain.ErrLockedType)
		}
		if err := checkUser(ctx, r, in.RequestedForID); err != nil {
			return err
		}
		a.SubmissionType = in.SubmissionType
		a.Notes = in.Notes
		a.RequestedForID = emptyToNil(in.RequestedForID)
		if err := r.Approvals.Update(ctx, a); err != nil {
			return err
		}
		if _, err := upsertSignatures(ctx, r, a, signatureEntries(in.Signatures)); err != nil {
			return err
		}
		if _, err := upsertAssets(ctx, r, a.ID, assetEntries(in.Assets)); err != nil {
			return err
		}
		// dropping the last unsigned slot completes the approval
		return u.derive(ctx, r, a, in.ActorID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	return u.Detail(ctx, in.ID)
}

// UpdateStatus applies an explicit transition. DONE additionally needs every live signature signed.
func (u *Usecase) UpdateStatus(ctx context.Context, in StatusInput) (*ApprovalDTO, error) {
	err := u.uow.WithinApprovalTx(ctx, in.ID, func(r uow.Repos, a *domain.Approval) error {
		if err := domain.Transition(a.Status, in.Status); err != nil {
			return apperror.Conflict(err.Error(), map[string]any{"from": a.Status, "to": in.Status}).Wrap(err)
		}
		if in.Status == domain.StatusDone && a.Status != domain.StatusDone {
			sigs, err := r.Approvals.LiveSignatures(ctx, a.ID)
			if err != nil {
				return err
			}
			if !domain.AllSigned(sigs) {
				return apperror.Conflict("every signature must be signed before DONE", nil).Wrap(domain.ErrUnsignedRemain)
			}
		}
		return u.setStatus(ctx, r, a, in.Status, in.ActorID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	return u.Detail(ctx, in.ID)
}

func (u *Usecase) Delete(ctx context.Context, approvalID string) error {
	a, err := u.approvals.FindByID(ctx, approvalID)
	if err != nil {
		return notFound(err)
	}
	return u.approvals.SoftDelete(ctx, a.ID)
}

func (u *Usecase) Detail(ctx context.Context, approvalID string) (*ApprovalDTO, error) {
	a, err := u.approvals.FindDetail(ctx, approvalID)
	if err != nil {
		return nil, notFound(err)
	}
	return toDTO(u.fmt, a), nil
}

// DetailFor is Detail limited to approvals the actor may list; anything else reads as not found.
func (u *Usecase) DetailFor(ctx context.Context, actor user.Actor, approvalID string) (*ApprovalDTO, error) {
	a, err := u.visible(ctx, actor, approvalID)
	if err != nil {
		return nil, err
	}
	return toDTO(u.fmt, a), nil
}

func (u *Usecase) visible(ctx context.Context, actor user.Actor, approvalID string) (*domain.Approval, error) {
	a, err := u.approvals.FindDetail(ctx, approvalID)
	if err != nil {
		return nil, notFound(err)
	}
	if !domain.VisibilityFor(actor).Permits(a) {
		return nil, notFound(domain.ErrNotFound)
	}
	return a, nil
}

// Get lists approvals visible to the actor; rows and total are fetched concurrently.
func (u *Usecase) Get(ctx context.Context, in ListInput) (*ListResult, error) {
	q := domain.ListQuery{
		Params: paging.New(in.Page, in.Size),
		Search: in.Search,
		Scope:  domain.VisibilityFor(in.Actor),
	}

	var (
		rows  []domain.Approval
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = u.approvals.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.approvals.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]ApprovalDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *toDTO(u.fmt, &rows[i]))
	}
	return &ListResult{Items: items, Meta: paging.NewMeta(q.Params, total)}, nil
}

func checkUser(ctx context.Context, r uow.Repos, userID *string) error {
	if userID == nil || *userID == "" {
		return nil
	}
	if _, err := r.Users.FindByID(ctx, *userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperror.NotFound("user not found", map[string]string{"userId": *userID}).Wrap(err)
		}
		return err
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
