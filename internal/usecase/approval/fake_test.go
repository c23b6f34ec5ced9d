package approval

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/internal/testutil/approvalmock"
	"asset-approval-backend/internal/testutil/assetmock"
	"asset-approval-backend/internal/testutil/categorymock"
	"asset-approval-backend/internal/testutil/historymock"
	"asset-approval-backend/internal/testutil/uowmock"
	"asset-approval-backend/internal/testutil/usermock"
	"asset-approval-backend/pkg/timefmt"
)

// store is an in-memory backing for the function mocks.
type store struct {
	mu           sync.Mutex
	users        map[string]*user.User
	approvals    map[string]*domain.Approval
	sigs         map[string]*domain.Signature
	lines        map[string]*domain.Asset
	assets       map[string]*asset.Asset
	categories   map[string]*category.Category
	histories    []history.History
	statusWrites int
	seq          int
}

func newStore() *store {
	return &store{
		users:      map[string]*user.User{},
		approvals:  map[string]*domain.Approval{},
		sigs:       map[string]*domain.Signature{},
		lines:      map[string]*domain.Asset{},
		assets:     map[string]*asset.Asset{},
		categories: map[string]*category.Category{},
	}
}

func (s *store) tick() time.Time {
	s.seq++
	return time.Date(2025, 10, 2, 9, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Minute)
}

func (s *store) addUser(id, email string, role user.Role) *user.User {
	u := &user.User{ID: id, FirstName: id, LastName: "X", Email: email, Role: role, IsActive: true}
	s.users[id] = u
	return u
}

func (s *store) liveSigs(approvalID string) []domain.Signature {
	var out []domain.Signature
	for _, sg := range s.sigs {
		if sg.ApprovalID == approvalID && !sg.IsDeleted {
			out = append(out, *sg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *store) countSigs(approvalID string) int {
	n := 0
	for _, sg := range s.sigs {
		if sg.ApprovalID == approvalID {
			n++
		}
	}
	return n
}

func (s *store) approvalRepo() *approvalmock.Repo {
	find := func(_ context.Context, id string) (*domain.Approval, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		a, ok := s.approvals[id]
		if !ok || a.IsDeleted {
			return nil, domain.ErrNotFound
		}
		cp := *a
		return &cp, nil
	}
	return &approvalmock.Repo{
		CreateFn: func(_ context.Context, a *domain.Approval) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			a.CreatedAt, a.UpdatedAt = s.tick(), s.tick()
			cp := *a
			s.approvals[a.ID] = &cp
			return nil
		},
		UpdateFn: func(_ context.Context, a *domain.Approval) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cur := s.approvals[a.ID]
			cur.SubmissionType, cur.Status, cur.Notes, cur.RequestedForID = a.SubmissionType, a.Status, a.Notes, a.RequestedForID
			return nil
		},
		UpdateStatusFn: func(_ context.Context, id string, st domain.Status) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.statusWrites++
			s.approvals[id].Status = st
			return nil
		},
		SoftDeleteFn: func(_ context.Context, id string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.approvals[id].IsDeleted = true
			return nil
		},
		FindByIDFn:          find,
		FindByIDForUpdateFn: find,
		FindDetailFn: func(ctx context.Context, id string) (*domain.Approval, error) {
			a, err := find(ctx, id)
			if err != nil {
				return nil, err
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			a.Signatures = s.liveSigs(id)
			for _, l := range s.lines {
				if l.ApprovalID == id && !l.IsDeleted {
					a.Assets = append(a.Assets, *l)
				}
			}
			a.CreatedBy = s.users[a.CreatedByID]
			return a, nil
		},
		CreateSignatureFn: func(_ context.Context, sg *domain.Signature) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			sg.CreatedAt = s.tick()
			cp := *sg
			s.sigs[sg.ID] = &cp
			return nil
		},
		UpdateSignatureFn: func(_ context.Context, sg *domain.Signature) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cur := s.sigs[sg.ID]
			cur.UserID, cur.Name, cur.Email, cur.IsDeleted = sg.UserID, sg.Name, sg.Email, sg.IsDeleted
			return nil
		},
		FindSignatureFn: func(_ context.Context, id string) (*domain.Signature, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			sg, ok := s.sigs[id]
			if !ok {
				return nil, domain.ErrSignatureNotFound
			}
			cp := *sg
			return &cp, nil
		},
		LiveSignaturesFn: func(_ context.Context, approvalID string) ([]domain.Signature, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.liveSigs(approvalID), nil
		},
		UpdateSignaturePositionFn: func(_ context.Context, id string, x, y float64) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sigs[id].PositionX, s.sigs[id].PositionY = &x, &y
			return nil
		},
		SignFn: func(_ context.Context, id, image string, at time.Time) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.sigs[id].Image, s.sigs[id].SignedAt = &image, &at
			return nil
		},
		CreateAssetFn: func(_ context.Context, l *domain.Asset) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cp := *l
			s.lines[l.ID] = &cp
			return nil
		},
		UpdateAssetFn: func(_ context.Context, l *domain.Asset) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			cp := *l
			s.lines[l.ID] = &cp
			return nil
		},
		FindAssetFn: func(_ context.Context, id string) (*domain.Asset, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			l, ok := s.lines[id]
			if !ok {
				return nil, domain.ErrAssetNotFound
			}
			cp := *l
			return &cp, nil
		},
	}
}

func (s *store) userRepo() *usermock.Repo {
	return &usermock.Repo{
		FindByIDFn: func(_ context.Context, id string) (*user.User, error) {
			if u, ok := s.users[id]; ok && !u.IsDeleted {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
	}
}

func (s *store) repos() uow.Repos {
	return uow.Repos{
		Approvals: s.approvalRepo(),
		Users:     s.userRepo(),
		Histories: &historymock.Repo{CreateFn: func(_ context.Context, h *history.History) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.histories = append(s.histories, *h)
			return nil
		}},
		Assets: &assetmock.Repo{FindByIDFn: func(_ context.Context, id string) (*asset.Asset, error) {
			if a, ok := s.assets[id]; ok {
				return a, nil
			}
			return nil, asset.ErrNotFound
		}},
		Categories: &categorymock.Repo{FindByIDFn: func(_ context.Context, id string) (*category.Category, error) {
			if c, ok := s.categories[id]; ok {
				return c, nil
			}
			return nil, category.ErrNotFound
		}},
	}
}

func (s *store) usecase() *Usecase {
	r := s.repos()
	return NewUsecase(r.Approvals, r.Users, uowmock.Passthrough(r), timefmt.New(timefmt.DefaultZone)).
		WithClock(func() time.Time { return time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC) })
}
