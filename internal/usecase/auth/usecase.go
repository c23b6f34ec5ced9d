package auth

import (
	"context"
	"errors"
	"strings"

	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/internal/infrastructure/token"
	"asset-approval-backend/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const minPasswordLen = 6

type Tokens interface {
	Issue(a user.Actor) (*token.Pair, error)
	ParseRefresh(raw string) (user.Actor, error)
}

type Usecase struct {
	users  user.Repository
	tokens Tokens
	log    *logrus.Entry
}

func NewUsecase(users user.Repository, tokens Tokens) *Usecase {
	return &Usecase{users: users, tokens: tokens, log: logrus.WithField("usecase", "auth")}
}

type ChangePasswordInput struct {
	UserID          string
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

func invalidLogin() error {
	return apperror.Unauthorized("invalid email or password", nil).Wrap(user.ErrInvalidLogin)
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*token.Pair, error) {
	usr, err := u.users.FindByEmail(ctx, strings.TrimSpace(email))
	switch {
	case errors.Is(err, user.ErrNotFound):
		return nil, invalidLogin()
	case err != nil:
		return nil, err
	}
	if !user.CheckPassword(usr.Password, password) {
		return nil, invalidLogin()
	}
	pair, err := u.tokens.Issue(user.Actor{ID: usr.ID, Email: usr.Email, Role: usr.Role})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"user_id": usr.ID, "role": usr.Role}).Info("login success")
	return pair, nil
}

// Refresh trades a refresh token for a new pair, re-reading the user so role changes apply.
func (u *Usecase) Refresh(ctx context.Context, raw string) (*token.Pair, error) {
	if raw == "" {
		return nil, apperror.Unauthorized("refresh token is missing", nil)
	}
	actor, err := u.tokens.ParseRefresh(raw)
	if err != nil {
		return nil, apperror.TokenExpired("invalid or expired refresh token").Wrap(err)
	}
	usr, err := u.users.FindByID(ctx, actor.ID)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return nil, apperror.NotFound("user not found", nil).Wrap(err)
	case err != nil:
		return nil, err
	}
	return u.tokens.Issue(user.Actor{ID: usr.ID, Email: usr.Email, Role: usr.Role})
}

// ChangePassword sets a new password and activates the account. An already active
// account must prove the old password first.
func (u *Usecase) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	usr, err := u.users.FindByID(ctx, in.UserID)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return apperror.NotFound("user not found", nil).Wrap(err)
	case err != nil:
		return err
	}

	fields := map[string]string{}
	if usr.IsActive {
		switch {
		case in.OldPassword == "":
			fields["oldPassword"] = "Old password is required"
		case !user.CheckPassword(usr.Password, in.OldPassword):
			fields["oldPassword"] = "Old password is incorrect"
		}
	}
	switch {
	case in.NewPassword == "":
		fields["newPassword"] = "New password is required"
	case len(in.NewPassword) < minPasswordLen:
		fields["newPassword"] = "New password must be at least 6 characters"
	}
	if in.ConfirmPassword != in.NewPassword {
		fields["confirmPassword"] = "New password and confirm password do not match"
	}
	if len(fields) > 0 {
		return apperror.Validation("validation error", fields)
	}

	hash, err := user.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, usr.ID, hash, true)
}
