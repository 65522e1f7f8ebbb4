package echoapi

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
)

var errExamNotFoundInCtx = errors.New("exam object not found in echo.Context")

type examApi struct {
	conf *core.Config
	svc  *exam.Service
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, conf *core.Config, svc *exam.Service) {
	api := examApi{conf: conf, svc: svc}

	eg := g.Group("/exams", jwt)
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.DELETE("", api.destroyMultiple)
	eg.GET("/upcoming", api.upcoming)
	eg.POST("/remind", api.remind)

	// detail endpoints
	dg := eg.Group("/:id", ctxExamMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	exm, err := api.svc.Create(ownerID, academicLevel(ctx, api.conf), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, exm)
}

func (api *examApi) query(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.QueryAll(ownerID, academicLevel(ctx, api.conf)))
}

func (api *examApi) upcoming(ctx echo.Context) error {
	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Upcoming(ownerID, academicLevel(ctx, api.conf)))
}

// remind emails the owner a digest of exams due within the coming days.
func (api *examApi) remind(ctx echo.Context) error {
	var data RemindRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RemindRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Days == 0 {
		data.Days = api.conf.ExamReminderDays
	}

	ownerID, err := getContextOwnerID(ctx)
	if err != nil {
		return err
	}

	sent := api.svc.SendReminder(ownerID, academicLevel(ctx, api.conf), mail.Address{Address: data.Email}, data.Days)
	return ctx.JSON(http.StatusOK, RemindResponse{Sent: sent})
}

func (api *examApi) retrieve(ctx echo.Context) error {
	exm, ok := ctx.Get(objectContextKey).(exam.Exam)
	if !ok {
		return errors.Wrap(errExamNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, exm)
}

func (api *examApi) update(ctx echo.Context) error {
	exm, ok := ctx.Get(objectContextKey).(exam.Exam)
	if !ok {
		return errors.Wrap(errExamNotFoundInCtx, "retrieving object from context")
	}

	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(exm); err != nil {
		return err
	}

	exm, err := api.svc.Update(exm, data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, exm)
}

func (api *examApi) destroy(ctx echo.Context) error {
	exm, ok := ctx.Get(objectContextKey).(exam.Exam)
	if !ok {
		return errors.Wrap(errExamNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(exm.OwnerID, exm.ID); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting exams")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func ctxExamMiddleware(svc *exam.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ownerID, err := getContextOwnerID(ctx)
			if err != nil {
				return err
			}
			if exm, err := svc.GetByID(ctx.Param("id"), ownerID); err == nil {
				ctx.Set(objectContextKey, exm)
				return next(ctx)
			} else if errors.Cause(err) != exam.ErrNotFound {
				return errors.Wrap(err, "finding exam by ID")
			}
			return errHttpNotFound
		}
	}
}

type (
	RemindRequest struct {
		Email string `json:"email" validate:"required,email"`
		Days  int    `json:"days" validate:"omitempty,gt=0"`
	}

	RemindResponse struct {
		Sent int `json:"sent"`
	}
)

func (rr *RemindRequest) Validate() error {
	rr.Email = core.CleanString(rr.Email, true /* lower */)
	return core.Validate.Struct(rr)
}
