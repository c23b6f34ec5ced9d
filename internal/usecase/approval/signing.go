package approval

import (
	"context"
	"errors"
	"strings"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"
)

// CanSign checks that actor is the signer bound to signatureID.
func (u *Usecase) CanSign(ctx context.Context, actor user.Actor, signatureID string) error {
	s, err := u.approvals.FindSignature(ctx, signatureID)
	if err != nil {
		return notFound(err)
	}
	if s.IsDeleted {
		return apperror.NotFound("signature not found", nil).Wrap(domain.ErrSignatureNotFound)
	}
	if !domain.CanSign(actor, *s) {
		return apperror.Forbidden("you are not the signer of this signature").Wrap(domain.ErrNotSigner)
	}
	return nil
}

// Sign stores the signature image and time in one write, then re-derives the approval status.
func (u *Usecase) Sign(ctx context.Context, in SignInput) (*ApprovalDTO, error) {
	if strings.TrimSpace(in.Image) == "" {
		return nil, apperror.Validation("image is required", nil)
	}
	s, err := u.approvals.FindSignature(ctx, in.SignatureID)
	if err != nil {
		return nil, notFound(err)
	}

	err = u.uow.WithinApprovalTx(ctx, s.ApprovalID, func(r uow.Repos, a *domain.Approval) error {
		// re-read under the approval lock
		s, err := r.Approvals.FindSignature(ctx, in.SignatureID)
		if err != nil {
			return err
		}
		if s.IsDeleted {
			return apperror.NotFound("signature not found", nil).Wrap(domain.ErrSignatureNotFound)
		}
		if a.Status != domain.StatusWaitingApproval {
			return apperror.Conflict("approval is not waiting for approval", map[string]any{"status": a.Status}).Wrap(domain.ErrNotSignable)
		}
		if s.IsSigned() {
			return apperror.Conflict("signature already signed", nil).Wrap(domain.ErrAlreadySigned)
		}

		if err := r.Approvals.Sign(ctx, s.ID, in.Image, u.now().UTC()); err != nil {
			return err
		}
		h := newHistory(history.TypeSigned, a.ID, in.ActorID, "", map[string]any{"signatureId": s.ID})
		if err := r.Histories.Create(ctx, h); err != nil {
			return err
		}
		return u.derive(ctx, r, a, in.ActorID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	return u.Detail(ctx, s.ApprovalID)
}

// CheckAndUpdate moves a WAITING_APPROVAL approval to DONE once every live signature is signed.
// Repeated calls write nothing.
func (u *Usecase) CheckAndUpdate(ctx context.Context, approvalID string) (domain.Status, error) {
	var status domain.Status
	err := u.uow.WithinApprovalTx(ctx, approvalID, func(r uow.Repos, a *domain.Approval) error {
		if err := u.derive(ctx, r, a, ""); err != nil {
			return err
		}
		status = a.Status
		return nil
	})
	if err != nil {
		return "", notFound(err)
	}
	return status, nil
}

func (u *Usecase) derive(ctx context.Context, r uow.Repos, a *domain.Approval, actorID string) error {
	if a.Status != domain.StatusWaitingApproval {
		return nil
	}
	sigs, err := r.Approvals.LiveSignatures(ctx, a.ID)
	if err != nil {
		return err
	}
	return u.setStatus(ctx, r, a, domain.Derive(a.Status, sigs), actorID)
}

// GetPreviousSignature returns the caller's latest image on a finished approval, or nil.
func (u *Usecase) GetPreviousSignature(ctx context.Context, userID string) (*PreviousSignatureDTO, error) {
	s, err := u.approvals.LatestSignedImage(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSignatureNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.Image == nil {
		return nil, nil
	}
	return &PreviousSignatureDTO{Image: *s.Image}, nil
}
