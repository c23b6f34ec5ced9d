package http

import (
	"net/http"

	"asset-approval-backend/internal/adapter/middleware"
	domain "asset-approval-backend/internal/domain/upload"
	ucUpload "asset-approval-backend/internal/usecase/upload"
	"asset-approval-backend/pkg/apperror"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct{ uc *ucUpload.Usecase }

func NewUploadHandler(uc *ucUpload.Usecase) *UploadHandler { return &UploadHandler{uc: uc} }

type uploadForm struct {
	Type  string `json:"type"  validate:"required,uploadkind"`
	Usage string `json:"usage" validate:"required,usage"`
}

// Upload accepts multipart/form-data with file, type and usage.
func (h *UploadHandler) Upload(c echo.Context) error {
	form := uploadForm{Type: c.FormValue("type"), Usage: c.FormValue("usage")}
	if err := c.Validate(&form); err != nil {
		return apperror.Validation("Validation error", fieldErrorMap(ToFieldErrors(err))).Wrap(err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.Validation("file is required", map[string][]string{"file": {"is required"}}).Wrap(err)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	var uploader *string
	if a, ok := middleware.ActorFrom(c); ok && a.ID != "" {
		uploader = &a.ID
	}
	file, err := h.uc.Upload(c.Request().Context(), ucUpload.Input{
		Kind:       domain.Kind(form.Type),
		Usage:      form.Usage,
		Filename:   fh.Filename,
		MimeType:   fh.Header.Get(echo.HeaderContentType),
		Size:       fh.Size,
		Body:       f,
		UploaderID: uploader,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "File uploaded successfully", file)
}
