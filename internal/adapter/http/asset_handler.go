package http

import (
	"net/http"
	"strings"

	ucAsset "asset-approval-backend/internal/usecase/asset"
	"asset-approval-backend/pkg/apperror"

	"github.com/labstack/echo/v4"
)

type AssetHandler struct{ uc *ucAsset.Usecase }

func NewAssetHandler(uc *ucAsset.Usecase) *AssetHandler { return &AssetHandler{uc: uc} }

type assetReq struct {
	Name          string  `json:"name"         validate:"required,max=150"`
	SerialNumber  *string `json:"serialNumber" validate:"omitempty,max=100"`
	IsMaintenance bool    `json:"isMaintenance"`
	Image         *string `json:"image"`
	CategoryID    string  `json:"categoryId"   validate:"required"`
}

func (h *AssetHandler) Create(c echo.Context) error {
	var req assetReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), ucAsset.Input(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Asset create successfully", dto)
}

// List returns one row per asset name with its live quantity.
func (h *AssetHandler) List(c echo.Context) error {
	q := readPage(c)
	res, err := h.uc.GetGrouped(c.Request().Context(), ucAsset.ListInput{Page: q.Page, Size: q.Size, Search: q.Keyword})
	if err != nil {
		return err
	}
	return respondPage(c, "Get assets successfully", res.Items, res.Meta)
}

func (h *AssetHandler) ListByName(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return apperror.Validation("missing name path param", nil)
	}
	q := readPage(c)
	res, err := h.uc.GetByName(c.Request().Context(), name, ucAsset.ListInput{Page: q.Page, Size: q.Size, Search: q.Keyword})
	if err != nil {
		return err
	}
	return respondPage(c, "Get assets successfully", res.Items, res.Meta)
}

func (h *AssetHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req assetReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), id, ucAsset.Input(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Update asset successfully", dto)
}

func (h *AssetHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delete asset successfully", nil)
}
