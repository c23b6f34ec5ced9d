package uow

import (
	"context"

	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/history"
	"asset-approval-backend/internal/domain/user"
)

// Repos are the repositories bound to one transaction.
type Repos struct {
	Approvals  approval.Repository
	Histories  history.Repository
	Users      user.Repository
	Assets     asset.Repository
	Categories category.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the live approval row first, then pass it in
	WithinApprovalTx(ctx context.Context, approvalID string, fn func(r Repos, a *approval.Approval) error) error
}
