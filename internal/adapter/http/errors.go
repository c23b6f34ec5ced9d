package http

import (
	"errors"
	"fmt"
	"net/http"

	"asset-approval-backend/internal/adapter/middleware"
	"asset-approval-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// NewErrorHandler turns any handler error into the response envelope. Internal
// details never reach the client; they are logged with the trace id instead.
func NewErrorHandler(log *logrus.Entry) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg, data := resolveError(err)

		req := c.Request()
		traceID := middleware.TraceIDFrom(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		log.WithFields(logrus.Fields{
			"trace_id": traceID,
			"context":  req.Method + " " + req.URL.RequestURI(),
			"status":   status,
		}).WithError(err).Error(msg)

		c.Response().Header().Set(middleware.HeaderTraceID, traceID)
		if req.Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		if werr := respondError(c, status, msg, data); werr != nil {
			log.WithError(werr).Warn("write error response")
		}
	}
}

func resolveError(err error) (int, string, any) {
	if ae, ok := apperror.As(err); ok {
		msg := ae.Message
		if ae.Kind == apperror.KindInternal && msg == "" {
			msg = http.StatusText(http.StatusInternalServerError)
		}
		return ae.Status(), msg, ae.Data
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "Validation error", fieldErrorMap(ToFieldErrors(ve))
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg, nil
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil
}
