package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/siherrmann/dataTable/view/components"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
)

// HandleErrorView renders unhandled errors as popup.
func HandleErrorView(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var message interface{}
	message = err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = he.Message
	}
	slog.Error("Request failed", "path", c.Request().URL.Path, "code", code, "error", err)

	if renderErr := renderPopup(c, components.PopupError("Error", fmt.Sprint(message)), code); renderErr != nil {
		slog.Error("Failed to render error popup", "error", renderErr)
	}
}

func HandleCSRFErrorView(w http.ResponseWriter, r *http.Request) {
	err := csrf.FailureReason(r)
	slog.Warn("CSRF error", "path", r.URL.Path, "error", err)
	if renderErr := renderPopupHTTP(w, r, components.PopupError("Error", "Invalid CSRF token, please reload the page."), http.StatusForbidden); renderErr != nil {
		slog.Error("Failed to render CSRF error popup", "error", renderErr)
	}
}
