package uowmock

import (
	"context"
	"errors"

	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApprovalTxFn func(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.Approval) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every callback directly against repos, locking nothing.
// WithinApprovalTx loads the approval through repos.Approvals.FindByIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) },
		WithinApprovalTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *approval.Approval) error) error {
			a, err := repos.Approvals.FindByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, a)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinApprovalTx(fn func(context.Context, string, func(uow.Repos, *approval.Approval) error) error) *UoW {
	m.WithinApprovalTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApprovalTx(ctx context.Context, approvalID string, fn func(r uow.Repos, a *approval.Approval) error) error {
	if m.WithinApprovalTxFn != nil {
		return m.WithinApprovalTxFn(ctx, approvalID, fn)
	}
	return errUnimplemented
}
