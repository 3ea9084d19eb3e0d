package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/siherrmann/dataTable/view/components"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const (
	HX_REQUEST              = "HX-Request"
	HX_RETARGET             = "HX-Retarget"
	HX_RESWAP               = "HX-Reswap"
	HX_REFRESH              = "HX-Refresh"
	HX_PUSH_URL             = "HX-Push-Url"
	HX_TRIGGER_AFTER_SETTLE = "HX-Trigger-After-Settle"

	BODY_TARGET = "#body"
)

// writeComponent renders t into a pooled buffer first so a failing component
// never leaves a half written response.
func writeComponent(ctx context.Context, w http.ResponseWriter, t templ.Component, status int) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := t.Render(ctx, buf); err != nil {
		return err
	}

	w.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func render(c echo.Context, t templ.Component, status ...int) error {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return writeComponent(c.Request().Context(), c.Response(), t, code)
}

// renderScreen renders a full screen into the body, replacing the current one for htmx navigation.
func renderScreen(c echo.Context, t templ.Component) error {
	c.Response().Header().Set(HX_RETARGET, BODY_TARGET)
	return render(c, t)
}

func setPopupHeaders(header http.Header) {
	header.Set(HX_RETARGET, BODY_TARGET)
	header.Set(HX_RESWAP, "beforeend")
}

// renderPopup appends the component to the body.
func renderPopup(c echo.Context, component templ.Component, status ...int) error {
	setPopupHeaders(c.Response().Header())
	return render(c, component, status...)
}

func renderPopupHTTP(w http.ResponseWriter, r *http.Request, component templ.Component, status int) error {
	setPopupHeaders(w.Header())
	return writeComponent(r.Context(), w, component, status)
}

// renderPopupOrJson answers htmx requests with a popup and everything else with JSON.
// A string as first value is the message, the last other value is sent as "value".
func renderPopupOrJson(c echo.Context, status int, values ...any) error {
	if len(values) == 0 {
		return c.NoContent(status)
	}

	if c.Request().Header.Get(HX_REQUEST) != "" {
		message := fmt.Sprint(values[0])
		if status >= 200 && status < 300 {
			return renderPopup(c, components.PopupSuccess("Info", message), status)
		}
		return renderPopup(c, components.PopupError("Error", message), status)
	}

	body := map[string]any{}
	for i, v := range values {
		if message, ok := v.(string); ok && i == 0 {
			body["message"] = message
			continue
		}
		body["value"] = v
	}
	return c.JSON(status, body)
}
