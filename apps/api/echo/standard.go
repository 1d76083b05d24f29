package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/standard"
)

type standardApi struct {
	svc *standard.Service
}

func registerStandardAPI(g *echo.Group, authed echo.MiddlewareFunc, svc *standard.Service) {
	api := standardApi{svc: svc}

	sg := g.Group("/standards", authed)
	sg.GET("", api.query)
	sg.GET("/:code", api.retrieve)
}

func (api *standardApi) query(ctx echo.Context) error {
	filter := new(standard.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []standard.Standard{})
	}

	stds, err := api.svc.Query(*filter)
	if err != nil {
		return errors.Wrap(err, "querying standards")
	}
	return ctx.JSON(http.StatusOK, stds)
}

func (api *standardApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.GetByCode(ctx.Param("code"))
	if err != nil {
		return errors.Wrap(err, "finding standard by code")
	}
	return ctx.JSON(http.StatusOK, std)
}
