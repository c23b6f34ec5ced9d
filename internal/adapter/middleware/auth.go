package middleware

import (
	"errors"
	"slices"
	"strings"

	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"

	"github.com/labstack/echo/v4"
)

type TokenParser interface {
	ParseAccess(raw string) (user.Actor, error)
}

func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth requires a valid access token. Missing token is 401; a bad or expired one is 440
// so clients know to refresh.
func Auth(p TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := BearerToken(c)
			if raw == "" {
				return apperror.Unauthorized("unauthorized: no token provided", nil)
			}
			actor, err := p.ParseAccess(raw)
			if err != nil {
				return apperror.TokenExpired("invalid or expired token").Wrap(err)
			}
			SetActor(c, actor)
			return next(c)
		}
	}
}

var errNoActor = errors.New("no authenticated actor")

// RequireRole must run after Auth.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	msg := "access denied, required roles: " + strings.Join(names, ", ")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return apperror.Unauthorized("unauthorized", nil).Wrap(errNoActor)
			}
			if !slices.Contains(roles, a.Role) {
				return apperror.Forbidden(msg)
			}
			return next(c)
		}
	}
}
