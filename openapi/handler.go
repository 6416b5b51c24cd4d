package openapi

import (
	"net/http"

	"gatehouse/server"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

func RegisterRoutes(srv *server.Server, doc *Document) {
	srv.Get("/openapi.json", func(c echo.Context) error {
		body, err := doc.JSON()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.Blob(http.StatusOK, "application/json", body)
	})

	srv.Get("/openapi.yaml", func(c echo.Context) error {
		body, err := doc.YAML()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.Blob(http.StatusOK, "application/yaml", body)
	})
}

var Module = fx.Options(
	fx.Provide(NewDocument),
	fx.Invoke(RegisterRoutes),
)
