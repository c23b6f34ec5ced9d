package approval

import (
	"context"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"
)

// UpdatePosition stores coordinates for the listed live signatures, then opens the
// approval for signing. Signatures missing from the list keep their coordinates.
func (u *Usecase) UpdatePosition(ctx context.Context, in PositionsInput) (*ApprovalDTO, error) {
	err := u.uow.WithinApprovalTx(ctx, in.ApprovalID, func(r uow.Repos, a *domain.Approval) error {
		if err := domain.Transition(a.Status, domain.StatusWaitingApproval); err != nil {
			return apperror.Conflict("positions can only change before the approval is finished", map[string]any{"status": a.Status}).Wrap(err)
		}

		sigs, err := r.Approvals.LiveSignatures(ctx, a.ID)
		if err != nil {
			return err
		}
		wanted := make(map[string]domain.Position, len(in.Positions))
		for _, p := range in.Positions {
			wanted[p.SignatureID] = p
		}
		for _, s := range sigs {
			p, ok := wanted[s.ID]
			if !ok {
				continue
			}
			if err := r.Approvals.UpdateSignaturePosition(ctx, s.ID, p.X, p.Y); err != nil {
				return err
			}
		}

		// positions are written before the status flips
		return u.setStatus(ctx, r, a, domain.StatusWaitingApproval, in.ActorID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	return u.Detail(ctx, in.ApprovalID)
}

// GetReviewedPosition reports whether every live signature has been placed.
func (u *Usecase) GetReviewedPosition(ctx context.Context, approvalID string) (*ReviewedDTO, error) {
	a, err := u.approvals.FindByID(ctx, approvalID)
	if err != nil {
		return nil, notFound(err)
	}
	sigs, err := u.approvals.LiveSignatures(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return &ReviewedDTO{IsReviewed: domain.Reviewed(sigs)}, nil
}

// ReviewedPositionFor is GetReviewedPosition under the same visibility as DetailFor.
func (u *Usecase) ReviewedPositionFor(ctx context.Context, actor user.Actor, approvalID string) (*ReviewedDTO, error) {
	a, err := u.visible(ctx, actor, approvalID)
	if err != nil {
		return nil, err
	}
	return &ReviewedDTO{IsReviewed: domain.Reviewed(a.Signatures)}, nil
}
