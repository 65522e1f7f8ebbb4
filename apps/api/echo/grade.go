package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/grade"
)

var errGradeNotFoundInCtx = errors.New("grade object not found in echo.Context")

type gradeApi struct {
	conf *core.Config
	svc  *grade.Service
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *grade.Service) {
	api := gradeApi{conf: conf, svc: svc}

	gg := g.Group("/grades", jwt)
	gg.POST("", api.create)
	gg.GET("", api.query)
	gg.DELETE("", api.destroyMultiple)
	gg.GET("/averages", api.averages)
	gg.POST("/target", api.target)

	// detail endpoints
	dg := gg.Group("/:id", ctxGradeMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	grd, err := api.svc.Create(ownerID, academicLevel(ctx, api.conf), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, grd)
}

func (api *gradeApi) query(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ownerID, academicLevel(ctx, api.conf)))
}

func (api *gradeApi) averages(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	subjects, overall := api.svc.Averages(ownerID, academicLevel(ctx, api.conf))
	return ctx.JSON(http.StatusOK, AveragesResponse{Subjects: subjects, Overall: overall})
}

func (api *gradeApi) target(ctx echo.Context) error {
	var data grade.TargetInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TargetInput")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	required := grade.RequiredFinalScore(data.CurrentAverage, data.FinalWeightPercent, data.TargetAverage)
	return ctx.JSON(http.StatusOK, TargetResponse{
		RequiredScore: required,
		Outcome:       grade.ClassifyRequired(required),
	})
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	grd, ok := ctx.Get(objectContextKey).(grade.Grade)
	if !ok {
		return errors.Wrap(errGradeNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) update(ctx echo.Context) error {
	grd, ok := ctx.Get(objectContextKey).(grade.Grade)
	if !ok {
		return errors.Wrap(errGradeNotFoundInCtx, "retrieving object from context")
	}

	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}
	if err := data.Validate(grd); err != nil {
		return err
	}

	grd, err := api.svc.Update(grd, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, grd)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	grd, ok := ctx.Get(objectContextKey).(grade.Grade)
	if !ok {
		return errors.Wrap(errGradeNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(grd.OwnerID, grd.ID); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradeApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting grades")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func ctxGradeMiddleware(svc *grade.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ownerID, err := getContextOwnerID(ctx)
			if err != nil {
				return err
			}
			if grd, err := svc.GetByID(ctx.Param("id"), ownerID); err == nil {
				ctx.Set(objectContextKey, grd)
				return next(ctx)
			} else if errors.Cause(err) != grade.ErrNotFound {
				return errors.Wrap(err, "finding grade by ID")
			}
			return errHttpNotFound
		}
	}
}

type (
	AveragesResponse struct {
		Subjects []grade.SubjectAverage `json:"subjects"`
		Overall  float64                `json:"overall"`
	}

	TargetResponse struct {
		RequiredScore float64       `json:"required_score"`
		Outcome       grade.Outcome `json:"outcome"`
	}
)
