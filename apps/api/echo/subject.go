package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

var errSubNotFoundInCtx = errors.New("subject object not found in echo.Context")

type subjectApi struct {
	conf *core.Config
	svc  *subject.Service
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *subject.Service) {
	api := subjectApi{conf: conf, svc: svc}

	sg := g.Group("/subjects", jwt)
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := sg.Group("/:id", ctxSubjectMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	sub, err := api.svc.Create(ownerID, academicLevel(ctx, api.conf), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *subjectApi) query(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ownerID, academicLevel(ctx, api.conf)))
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	sub, ok := ctx.Get(objectContextKey).(subject.Subject)
	if !ok {
		return errors.Wrap(errSubNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) update(ctx echo.Context) error {
	sub, ok := ctx.Get(objectContextKey).(subject.Subject)
	if !ok {
		return errors.Wrap(errSubNotFoundInCtx, "retrieving object from context")
	}

	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(sub); err != nil {
		return err
	}

	sub, err := api.svc.Update(sub, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	sub, ok := ctx.Get(objectContextKey).(subject.Subject)
	if !ok {
		return errors.Wrap(errSubNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(sub.OwnerID, sub.ID); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *subjectApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting subjects")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ctxSubjectMiddleware loads the owner's subject under :id into the context
// or short-circuits with a 404.
func ctxSubjectMiddleware(svc *subject.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ownerID, err := getContextOwnerID(ctx)
			if err != nil {
				return err
			}
			if sub, err := svc.GetByID(ctx.Param("id"), ownerID); err == nil {
				ctx.Set(objectContextKey, sub)
				return next(ctx)
			} else if errors.Cause(err) != subject.ErrNotFound {
				return errors.Wrap(err, "finding subject by ID")
			}
			return errHttpNotFound
		}
	}
}
