package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by load balancers and monitoring.
// It intentionally checks nothing beyond the process being up; the
// database and broker surface their own failures elsewhere.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
