package http

import (
	"net/http"

	"asset-approval-backend/internal/domain/user"
	ucUser "asset-approval-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *ucUser.Usecase }

func NewUserHandler(uc *ucUser.Usecase) *UserHandler { return &UserHandler{uc: uc} }

type registerReq struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Role      string `json:"role"      validate:"required,role"`
}

type socialMediaReq struct {
	Name string `json:"name" validate:"required,socialnetwork"`
	URL  string `json:"url"  validate:"required,url"`
}

type profileReq struct {
	FirstName   string           `json:"firstName"   validate:"required,max=100"`
	LastName    string           `json:"lastName"    validate:"max=100"`
	Image       *string          `json:"image"`
	SocialMedia []socialMediaReq `json:"socialMedia" validate:"dive"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), ucUser.RegisterInput{
		FirstName: req.FirstName,
		Email:     req.Email,
		Role:      user.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User registered successfully", dto)
}

func (h *UserHandler) List(c echo.Context) error {
	q := readPage(c)
	res, err := h.uc.Get(c.Request().Context(), q.Page, q.Size, q.Keyword)
	if err != nil {
		return err
	}
	return respondPage(c, "Get users successfully", res.Items, res.Meta)
}

func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get profile successfully", dto)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req profileReq
	if err := bind(c, &req); err != nil {
		return err
	}
	social := make([]ucUser.SocialMedia, 0, len(req.SocialMedia))
	for _, s := range req.SocialMedia {
		social = append(social, ucUser.SocialMedia{Name: ucUser.SocialNetwork(s.Name), URL: s.URL})
	}
	dto, err := h.uc.UpdateProfile(c.Request().Context(), actor.ID, ucUser.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Image:       req.Image,
		SocialMedia: social,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Update profile successfully", dto)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delete user successfully", nil)
}
