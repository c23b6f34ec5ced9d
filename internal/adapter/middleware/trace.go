package middleware

import (
	"regexp"

	"asset-approval-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

var reTraceID = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// TraceID tags every request with an id, reusing a well-formed inbound X-Trace-Id.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(HeaderTraceID)
			if !reTraceID.MatchString(tid) {
				tid = id.New()
			}
			c.Set(ctxTraceID, tid)
			c.Response().Header().Set(HeaderTraceID, tid)
			return next(c)
		}
	}
}
