package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pifand/internal/controller"
)

func registerStatusEndpoint(rest *echo.Echo, fanController controller.FanController) {
	rest.GET("/status/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, fanController.Snapshot(), indentationChar)
	})
}
