package http

import (
	"net/http"

	domain "asset-approval-backend/internal/domain/history"
	ucHistory "asset-approval-backend/internal/usecase/history"

	"github.com/labstack/echo/v4"
)

type HistoryHandler struct{ uc *ucHistory.Usecase }

func NewHistoryHandler(uc *ucHistory.Usecase) *HistoryHandler { return &HistoryHandler{uc: uc} }

type historyReq struct {
	Type          string         `json:"type"          validate:"required"`
	Description   *string        `json:"description"`
	AssetID       *string        `json:"assetId"`
	ApprovalID    *string        `json:"approvalId"`
	PerformedByID *string        `json:"performedById"`
	FromUserID    *string        `json:"fromUserId"`
	ToUserID      *string        `json:"toUserId"`
	Metadata      map[string]any `json:"metadata"`
}

// Create defaults performedById to the caller.
func (h *HistoryHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req historyReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.PerformedByID == nil {
		req.PerformedByID = &actor.ID
	}
	dto, err := h.uc.Create(c.Request().Context(), ucHistory.CreateInput{
		Type:          domain.Type(req.Type),
		Description:   req.Description,
		AssetID:       req.AssetID,
		ApprovalID:    req.ApprovalID,
		PerformedByID: req.PerformedByID,
		FromUserID:    req.FromUserID,
		ToUserID:      req.ToUserID,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "History create successfully", dto)
}

func (h *HistoryHandler) List(c echo.Context) error {
	list, err := h.uc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get histories successfully", list)
}

func (h *HistoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get history successfully", dto)
}
