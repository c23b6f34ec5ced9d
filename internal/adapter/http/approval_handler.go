package http

import (
	"net/http"

	domain "asset-approval-backend/internal/domain/approval"
	ucApproval "asset-approval-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type signatureReq struct {
	ID        string  `json:"id"`
	UserID    *string `json:"userId"`
	Name      *string `json:"name"     validate:"omitempty,max=100"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	IsDeleted bool    `json:"isDeleted"`
}

type approvalAssetReq struct {
	ID            string  `json:"id"`
	AssetID       *string `json:"assetId"`
	Name          *string `json:"name"         validate:"omitempty,max=150"`
	SerialNumber  *string `json:"serialNumber" validate:"omitempty,max=100"`
	IsMaintenance *bool   `json:"isMaintenance"`
	Image         *string `json:"image"`
	CategoryID    *string `json:"categoryId"`
	IsDeleted     bool    `json:"isDeleted"`
}

type approvalReq struct {
	SubmissionType string             `json:"submissionType" validate:"required,submissiontype"`
	Status         string             `json:"status"         validate:"omitempty,approvalstatus"`
	Notes          *string            `json:"notes"`
	RequestedForID *string            `json:"requestedForId"`
	Signatures     []signatureReq     `json:"signatures"     validate:"dive"`
	Assets         []approvalAssetReq `json:"assets"         validate:"dive"`
}

type statusReq struct {
	Status string `json:"status" validate:"required,approvalstatus"`
}

type positionReq struct {
	ID        string   `json:"id"        validate:"required"`
	PositionX *float64 `json:"positionX" validate:"required,gte=0"`
	PositionY *float64 `json:"positionY" validate:"required,gte=0"`
}

type positionsReq struct {
	Signatures []positionReq `json:"signatures" validate:"required,min=1,dive"`
}

type signReq struct {
	Image string `json:"image" validate:"required"`
}

func (r approvalReq) signatures() []ucApproval.SignatureInput {
	out := make([]ucApproval.SignatureInput, 0, len(r.Signatures))
	for _, s := range r.Signatures {
		out = append(out, ucApproval.SignatureInput(s))
	}
	return out
}

func (r approvalReq) assets() []ucApproval.AssetInput {
	out := make([]ucApproval.AssetInput, 0, len(r.Assets))
	for _, a := range r.Assets {
		out = append(out, ucApproval.AssetInput(a))
	}
	return out
}

func (h *ApprovalHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req approvalReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), ucApproval.CreateInput{
		SubmissionType: domain.SubmissionType(req.SubmissionType),
		Status:         domain.Status(req.Status),
		Notes:          req.Notes,
		RequestedForID: req.RequestedForID,
		CreatedByID:    actor.ID,
		Signatures:     req.signatures(),
		Assets:         req.assets(),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Approval create successfully", dto)
}

func (h *ApprovalHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	q := readPage(c)
	res, err := h.uc.Get(c.Request().Context(), ucApproval.ListInput{
		Page:   q.Page,
		Size:   q.Size,
		Search: q.Keyword,
		Actor:  actor,
	})
	if err != nil {
		return err
	}
	return respondPage(c, "Get approvals successfully", res.Items, res.Meta)
}

func (h *ApprovalHandler) Detail(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.DetailFor(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get approval successfully", dto)
}

func (h *ApprovalHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req approvalReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), ucApproval.UpdateInput{
		ID:             id,
		ActorID:        actor.ID,
		SubmissionType: domain.SubmissionType(req.SubmissionType),
		Notes:          req.Notes,
		RequestedForID: req.RequestedForID,
		Signatures:     req.signatures(),
		Assets:         req.assets(),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Process approval successfully", dto)
}

func (h *ApprovalHandler) UpdateStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), ucApproval.StatusInput{
		ID:      id,
		ActorID: actor.ID,
		Status:  domain.Status(req.Status),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Update approval status successfully", dto)
}

func (h *ApprovalHandler) UpdatePosition(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req positionsReq
	if err := bind(c, &req); err != nil {
		return err
	}
	positions := make([]domain.Position, 0, len(req.Signatures))
	for _, p := range req.Signatures {
		positions = append(positions, domain.Position{SignatureID: p.ID, X: *p.PositionX, Y: *p.PositionY})
	}
	dto, err := h.uc.UpdatePosition(c.Request().Context(), ucApproval.PositionsInput{
		ApprovalID: id,
		ActorID:    actor.ID,
		Positions:  positions,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Update signature position successfully", dto)
}

// Sign takes the signature id in the path; only the bound signer may sign.
func (h *ApprovalHandler) Sign(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req signReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.uc.CanSign(ctx, actor, id); err != nil {
		return err
	}
	dto, err := h.uc.Sign(ctx, ucApproval.SignInput{SignatureID: id, ActorID: actor.ID, Image: req.Image})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Sign approval successfully", dto)
}

func (h *ApprovalHandler) ReviewedPosition(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.ReviewedPositionFor(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get signature reviewed successfully", dto)
}

// PreviousSignature answers data: null when the caller has never signed.
func (h *ApprovalHandler) PreviousSignature(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.GetPreviousSignature(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get previous signature successfully", dto)
}

func (h *ApprovalHandler) Approvers(c echo.Context) error {
	list, err := h.uc.FindApprovers(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Get approvers successfully", list)
}

func (h *ApprovalHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Delete approval successfully", nil)
}
