package middleware

import (
	"asset-approval-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

const (
	HeaderTraceID        = "X-Trace-Id"
	HeaderIdempotencyKey = "Idempotency-Key"

	ctxTraceID = "trace_id"
	ctxActor   = "actor"
)

func TraceIDFrom(c echo.Context) string {
	id, _ := c.Get(ctxTraceID).(string)
	return id
}

// ActorFrom returns the caller stored by Auth.
func ActorFrom(c echo.Context) (user.Actor, bool) {
	a, ok := c.Get(ctxActor).(user.Actor)
	return a, ok
}

func SetActor(c echo.Context, a user.Actor) { c.Set(ctxActor, a) }
