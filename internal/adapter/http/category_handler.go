package http

import (
	"net/http"

	ucCategory "asset-approval-backend/internal/usecase/category"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct{ uc *ucCategory.Usecase }

func NewCategoryHandler(uc *ucCategory.Usecase) *CategoryHandler { return &CategoryHandler{uc: uc} }

type categoryReq struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Prefix   string `json:"prefix"   validate:"required,max=10"`
	IsDevice bool   `json:"isDevice"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), ucCategory.Input(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Category create successfully", dto)
}

func (h *CategoryHandler) List(c echo.Context) error {
	q := readPage(c)
	res, err := h.uc.Get(c.Request().Context(), q.Page, q.Size, q.Keyword)
	if err != nil {
		return err
	}
	return respondPage(c, "Get categories successfully", res.Items, res.Meta)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get category successfully", dto)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req categoryReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), id, ucCategory.Input(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Update category successfully", dto)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delete category successfully", nil)
}
