package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mereles/agenda/core"
)

const objectContextKey = "object"

type DestroyMultipleRequest struct {
	IDs []string `query:"id"`
}

// bindDateParam parses a YYYY-MM-DD query param, defaulting to now when the
// param is absent. A malformed value is a bad request.
func bindDateParam(ctx echo.Context, name string) (time.Time, error) {
	val := core.CleanString(ctx.QueryParam(name))
	if val == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(core.DateLayout, val)
	if err != nil {
		return time.Time{}, errHttpBadRequest
	}
	return t, nil
}
