package http

import (
	"strconv"
	"strings"

	"asset-approval-backend/internal/adapter/middleware"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/apperror"

	"github.com/labstack/echo/v4"
)

// bind decodes the request into dst and validates it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperror.Validation("invalid request body", nil).Wrap(err)
	}
	if err := c.Validate(dst); err != nil {
		return apperror.Validation("Validation error", fieldErrorMap(ToFieldErrors(err))).Wrap(err)
	}
	return nil
}

type pageQuery struct {
	Page    int
	Size    int
	Keyword string
}

// readPage accepts both ?size= and ?limit=; bad numbers fall back to defaults.
func readPage(c echo.Context) pageQuery {
	atoi := func(s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		return n
	}
	size := atoi(c.QueryParam("size"))
	if size == 0 {
		size = atoi(c.QueryParam("limit"))
	}
	return pageQuery{
		Page:    atoi(c.QueryParam("page")),
		Size:    size,
		Keyword: strings.TrimSpace(c.QueryParam("keyword")),
	}
}

func currentActor(c echo.Context) (user.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok || a.ID == "" {
		return user.Actor{}, apperror.Unauthorized("unauthorized", nil)
	}
	return a, nil
}

func pathID(c echo.Context) (string, error) {
	v := strings.TrimSpace(c.Param("id"))
	if v == "" {
		return "", apperror.Validation("missing id path param", nil)
	}
	return v, nil
}
