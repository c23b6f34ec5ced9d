package approval

import (
	"context"
	"strings"
	"unicode/utf8"

	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"
)

const minKeywordLen = 2

// FindApprovers lists live users eligible to sign, optionally filtered by keyword.
func (u *Usecase) FindApprovers(ctx context.Context, keyword string) ([]ApproverDTO, error) {
	kw := strings.TrimSpace(keyword)
	if kw != "" && utf8.RuneCountInString(kw) < minKeywordLen {
		return nil, apperror.Validation("keyword must be at least 2 characters", nil)
	}
	users, err := u.users.FindByRoles(ctx, user.ApproverRoles, kw)
	if err != nil {
		return nil, err
	}
	out := make([]ApproverDTO, 0, len(users))
	for _, usr := range users {
		out = append(out, toApprover(usr))
	}
	return out, nil
}
