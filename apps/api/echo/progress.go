package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/progress"
)

var teacherIDParam = "teacherId"

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *progress.Service) {
	api := progressApi{svc: svc}
	selfOrAdmin := selfOrAdminMiddleware(teacherIDParam)

	// the teacher id is optional: it defaults to the caller
	g.GET("/progress", api.query, authed, selfOrAdmin)
	g.GET("/progress/:"+teacherIDParam, api.query, authed, selfOrAdmin)
	g.GET("/stats", api.stats, authed, selfOrAdmin)
	g.GET("/stats/:"+teacherIDParam, api.stats, authed, selfOrAdmin)

	g.GET("/reports/overview", api.overview, authed, adminMiddleware)
}

func (api *progressApi) query(ctx echo.Context) error {
	entries, err := api.svc.QueryByTeacher(getContextTargetID(ctx, teacherIDParam))
	if err != nil {
		return errors.Wrap(err, "querying progress")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *progressApi) stats(ctx echo.Context) error {
	stats, err := api.svc.TeacherStats(getContextTargetID(ctx, teacherIDParam))
	if err != nil {
		return errors.Wrap(err, "computing teacher stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *progressApi) overview(ctx echo.Context) error {
	report, err := api.svc.SystemReport()
	if err != nil {
		return errors.Wrap(err, "computing system report")
	}
	return ctx.JSON(http.StatusOK, report)
}
