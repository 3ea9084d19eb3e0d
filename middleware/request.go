package middleware

import (
	"github.com/siherrmann/dataTable/model"

	"github.com/labstack/echo/v4"
)

// RequestContextMiddleware stores the htmx headers of the request in its context.
func (r *Middleware) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header
		rc := model.GetRequestContext(c)
		rc.Url = c.Request().URL.Path
		rc.HxRequest = header.Get("HX-Request") == "true"
		rc.HxHistoryRestore = header.Get("HX-History-Restore-Request") == "true"
		model.SetRequestContext(c, rc)

		if rc.HxRequest {
			c.Response().Header().Add(echo.HeaderVary, "HX-Request")
		}
		return next(c)
	}
}
