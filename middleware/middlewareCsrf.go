package middleware

import (
	"net/http"

	"github.com/siherrmann/dataTable/handler"
	"github.com/siherrmann/dataTable/model"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// CsrfMiddleware protects unsafe methods and puts the token of the request into the request context.
func (r Middleware) CsrfMiddleware() echo.MiddlewareFunc {
	csrfMiddleware := csrf.Protect(
		r.csrfKey,
		csrf.Path("/"),
		csrf.Secure(r.secureCookie),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(handler.HandleCSRFErrorView)),
		csrf.TrustedOrigins(r.trustedOrigins),
	)
	protect := echo.WrapMiddleware(csrfMiddleware)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withToken := protect(func(c echo.Context) error {
			rc := model.GetRequestContext(c)
			rc.CsrfToken = csrf.Token(c.Request())
			model.SetRequestContext(c, rc)
			return next(c)
		})

		return func(c echo.Context) error {
			// Requests without TLS skip the https only referer check.
			if c.Request().TLS == nil {
				c.SetRequest(csrf.PlaintextHTTPRequest(c.Request()))
			}
			return withToken(c)
		}
	}
}
