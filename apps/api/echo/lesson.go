package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/lesson"
)

type lessonApi struct {
	svc      *lesson.Service
	validate *validator.Validate
}

func registerLessonAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := lessonApi{
		svc:      deps.LessonSvc,
		validate: deps.Validate,
	}

	lg := g.Group("/lessons", authed)
	lg.GET("", api.query)
	lg.POST("", api.create)
}

// query returns every lesson to administrators and their own lessons to teachers.
func (api *lessonApi) query(ctx echo.Context) error {
	caller, err := getContextCaller(ctx)
	if err != nil {
		return err
	}

	var lessons []lesson.WithTeacher
	if caller.IsAdmin() {
		lessons, err = api.svc.QueryAll()
	} else {
		lessons, err = api.svc.QueryByTeacher(caller.ID)
	}
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) create(ctx echo.Context) error {
	caller, err := getContextCaller(ctx)
	if err != nil {
		return err
	}

	var data lesson.NewLesson
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.Create(caller.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	lessonsCreatedTotal.Inc()
	standardCodesSubmittedTotal.Add(float64(len(l.StandardsCovered)))
	return ctx.JSON(http.StatusCreated, l)
}
