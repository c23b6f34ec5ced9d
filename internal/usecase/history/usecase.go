package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	domain "asset-approval-backend/internal/domain/history"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
	"asset-approval-backend/pkg/timefmt"
)

type Usecase struct {
	repo domain.Repository
	fmt  *timefmt.Formatter
	now  func() time.Time
}

func NewUsecase(r domain.Repository, f *timefmt.Formatter) *Usecase {
	if f == nil {
		f = timefmt.New(timefmt.DefaultZone)
	}
	return &Usecase{repo: r, fmt: f, now: time.Now}
}

func validType(t domain.Type) bool {
	switch t {
	case domain.TypeApprovalCreated, domain.TypeStatusChanged, domain.TypeSigned,
		domain.TypeAssignment, domain.TypeMaintenance, domain.TypeWriteOff,
		domain.TypeProcurement, domain.TypeReturn:
		return true
	}
	return false
}

// Create appends an entry. Entries are never edited afterwards.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*DTO, error) {
	typ := domain.Type(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	if !validType(typ) {
		return nil, apperror.Validation("invalid history type", map[string]string{"type": string(in.Type)})
	}
	var meta []byte
	if len(in.Metadata) > 0 {
		b, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, apperror.Validation("metadata must be a JSON object", nil).Wrap(err)
		}
		meta = b
	}
	h := &domain.History{
		ID:            id.New(),
		Type:          typ,
		Description:   in.Description,
		AssetID:       in.AssetID,
		ApprovalID:    in.ApprovalID,
		PerformedByID: in.PerformedByID,
		FromUserID:    in.FromUserID,
		ToUserID:      in.ToUserID,
		Metadata:      meta,
		CreatedAt:     u.now().UTC(),
	}
	if err := u.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	dto := u.toDTO(h)
	return &dto, nil
}

func (u *Usecase) FindAll(ctx context.Context) ([]DTO, error) {
	rows, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DTO, 0, len(rows))
	for i := range rows {
		out = append(out, u.toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) FindByID(ctx context.Context, historyID string) (*DTO, error) {
	h, err := u.repo.FindByID(ctx, historyID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("history not found", nil).Wrap(err)
	}
	if err != nil {
		return nil, err
	}
	dto := u.toDTO(h)
	return &dto, nil
}
