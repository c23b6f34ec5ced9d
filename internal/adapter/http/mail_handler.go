package http

import (
	"context"
	"net/http"

	"asset-approval-backend/internal/adapter/mail"
	"asset-approval-backend/pkg/apperror"

	"github.com/labstack/echo/v4"
)

const resetPasswordSubject = "Your Password Has Been Successfully Reset"

type Mailer interface {
	Send(ctx context.Context, to, subject, template string, data map[string]any) error
	Render(name string, data map[string]any) (string, error)
}

type MailHandler struct{ mailer Mailer }

func NewMailHandler(m Mailer) *MailHandler { return &MailHandler{mailer: m} }

type resetPasswordMailReq struct {
	To   string         `json:"to"   validate:"required,email"`
	Data map[string]any `json:"data"`
}

func (h *MailHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordMailReq
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}
	if _, ok := req.Data["email"]; !ok {
		req.Data["email"] = req.To
	}
	if err := h.mailer.Send(c.Request().Context(), req.To, resetPasswordSubject, mail.TemplateResetPassword, req.Data); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Email sent successfully", nil)
}

var previewTemplates = map[string]string{
	"new-account":    mail.TemplateActivation,
	"reset-password": mail.TemplateResetPassword,
}

// Preview renders a mail template with sample data. Development only.
func (h *MailHandler) Preview(c echo.Context) error {
	name, ok := previewTemplates[c.Param("name")]
	if !ok {
		return apperror.NotFound("template not found", nil)
	}
	html, err := h.mailer.Render(name, map[string]any{
		"firstName":     "Haris",
		"email":         "haris@example.com",
		"role":          "Manager",
		"plainPassword": "155742",
		"loginUrl":      "http://localhost:3000/login",
	})
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}
