package http

import (
	"net/http"

	"asset-approval-backend/internal/adapter/middleware"
	"asset-approval-backend/internal/domain/paging"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every JSON response the API writes.
type Envelope struct {
	Success bool         `json:"success"`
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Data    any          `json:"data"`
	Meta    *paging.Meta `json:"meta,omitempty"`
	TraceID string       `json:"traceId,omitempty"`
}

func respond(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, Envelope{Success: true, Status: status, Message: msg, Data: data})
}

func respondPage(c echo.Context, msg string, data any, meta paging.Meta) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Message: msg, Data: data, Meta: &meta})
}

func respondError(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, Envelope{
		Success: false,
		Status:  status,
		Message: msg,
		Data:    data,
		TraceID: middleware.TraceIDFrom(c),
	})
}
