package http

import (
	"net/http"

	"asset-approval-backend/internal/adapter/middleware"
	ucAuth "asset-approval-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *ucAuth.Usecase }

func NewAuthHandler(uc *ucAuth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordReq struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	pair, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Login successfully", pair)
}

// RefreshToken reads the refresh token from the bearer header.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	pair, err := h.uc.Refresh(c.Request().Context(), middleware.BearerToken(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Refresh token successfully", pair)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req changePasswordReq
	if err := bind(c, &req); err != nil {
		return err
	}
	err = h.uc.ChangePassword(c.Request().Context(), ucAuth.ChangePasswordInput{
		UserID:          actor.ID,
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Change password successfully", nil)
}
