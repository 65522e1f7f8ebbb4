package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/timetable"
)

var errEntryNotFoundInCtx = errors.New("timetable entry object not found in echo.Context")

type timetableApi struct {
	conf *core.Config
	svc  *timetable.Service
}

func registerTimetableAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *timetable.Service) {
	api := timetableApi{conf: conf, svc: svc}

	tg := g.Group("/timetable", jwt)
	tg.POST("/entries", api.create)
	tg.GET("/entries", api.query)
	tg.DELETE("/entries", api.destroyMultiple)
	tg.GET("", api.week)
	tg.GET("/day", api.day)

	// detail endpoints
	dg := tg.Group("/entries/:id", ctxEntryMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *timetableApi) create(ctx echo.Context) error {
	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	entry, err := api.svc.Create(ownerID, academicLevel(ctx, api.conf), data)
	if err != nil {
		return errors.Wrap(err, "creating timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *timetableApi) query(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ownerID, academicLevel(ctx, api.conf)))
}

// week resolves the Monday..Friday grid containing `week` (default: today).
func (api *timetableApi) week(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	weekStart, err := bindDateParam(ctx, "week")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.ResolveWeek(ownerID, academicLevel(ctx, api.conf), weekStart))
}

// day lists the entries effective on `date` (default: today), earliest first.
func (api *timetableApi) day(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	date, err := bindDateParam(ctx, "date")
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Day(ownerID, academicLevel(ctx, api.conf), date))
}

func (api *timetableApi) retrieve(ctx echo.Context) error {
	entry, ok := ctx.Get(objectContextKey).(timetable.Entry)
	if !ok {
		return errors.Wrap(errEntryNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *timetableApi) update(ctx echo.Context) error {
	entry, ok := ctx.Get(objectContextKey).(timetable.Entry)
	if !ok {
		return errors.Wrap(errEntryNotFoundInCtx, "retrieving object from context")
	}

	var data timetable.UpdateEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEntry")
	}
	if err := data.Validate(entry); err != nil {
		return err
	}

	entry, err := api.svc.Update(entry, data)
	if err != nil {
		return errors.Wrap(err, "updating timetable entry")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *timetableApi) destroy(ctx echo.Context) error {
	entry, ok := ctx.Get(objectContextKey).(timetable.Entry)
	if !ok {
		return errors.Wrap(errEntryNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(entry.OwnerID, entry.ID); err != nil {
		return errors.Wrap(err, "deleting timetable entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *timetableApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ownerID, query.IDs...); err != nil {
		return errors.Wrap(err, "deleting timetable entries")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func ctxEntryMiddleware(svc *timetable.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ownerID, err := getContextOwnerID(ctx)
			if err != nil {
				return err
			}
			if entry, err := svc.GetByID(ctx.Param("id"), ownerID); err == nil {
				ctx.Set(objectContextKey, entry)
				return next(ctx)
			} else if errors.Cause(err) != timetable.ErrNotFound {
				return errors.Wrap(err, "finding timetable entry by ID")
			}
			return errHttpNotFound
		}
	}
}
