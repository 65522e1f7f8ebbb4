package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/task"
)

var errTaskNotFoundInCtx = errors.New("task object not found in echo.Context")

type taskApi struct {
	conf *core.Config
	svc  *task.Service
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *task.Service) {
	api := taskApi{conf: conf, svc: svc}

	tg := g.Group("/tasks", jwt)
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.DELETE("", api.destroyMultiple)
	tg.GET("/progress", api.progress)

	// detail endpoints
	dg := tg.Group("/:id", ctxTaskMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	tsk, err := api.svc.Create(ownerID, academicLevel(ctx, api.conf), data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, tsk)
}

func (api *taskApi) query(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ownerID, academicLevel(ctx, api.conf)))
}

func (api *taskApi) progress(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Progress(ownerID, academicLevel(ctx, api.conf)))
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	tsk, ok := ctx.Get(objectContextKey).(task.Task)
	if !ok {
		return errors.Wrap(errTaskNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) update(ctx echo.Context) error {
	tsk, ok := ctx.Get(objectContextKey).(task.Task)
	if !ok {
		return errors.Wrap(errTaskNotFoundInCtx, "retrieving object from context")
	}

	var data task.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err := data.Validate(tsk); err != nil {
		return err
	}

	tsk, err := api.svc.Update(tsk, data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, tsk)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	tsk, ok := ctx.Get(objectContextKey).(task.Task)
	if !ok {
		return errors.Wrap(errTaskNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(tsk.OwnerID, tsk.ID); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *taskApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting tasks")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func ctxTaskMiddleware(svc *task.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ownerID, err := getContextOwnerID(ctx)
			if err != nil {
				return err
			}
			if tsk, err := svc.GetByID(ctx.Param("id"), ownerID); err == nil {
				ctx.Set(objectContextKey, tsk)
				return next(ctx)
			} else if errors.Cause(err) != task.ErrNotFound {
				return errors.Wrap(err, "finding task by ID")
			}
			return errHttpNotFound
		}
	}
}
