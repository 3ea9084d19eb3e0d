package model

import (
	"context"

	"github.com/labstack/echo/v4"
)

type ContextKey string

const REQUEST_CONTEXT_KEY ContextKey = "request_context"

// RequestContext carries the per request values the views need.
type RequestContext struct {
	Url              string `json:"url"`
	HxRequest        bool   `json:"hx_request"`
	HxHistoryRestore bool   `json:"hx_history_restore"`
	CsrfToken        string `json:"-"`
}

// Partial reports whether the response may be a fragment instead of a full page.
// History restores replace the whole body and need the full page.
func (rc RequestContext) Partial() bool {
	return rc.HxRequest && !rc.HxHistoryRestore
}

func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, REQUEST_CONTEXT_KEY, rc)
}

func SetRequestContext(c echo.Context, rc RequestContext) {
	c.SetRequest(c.Request().WithContext(WithRequestContext(c.Request().Context(), rc)))
}

// GetRequestContext accepts an echo.Context or a context.Context and returns
// the zero RequestContext if none was set.
func GetRequestContext(c any) RequestContext {
	var ctx context.Context
	switch v := c.(type) {
	case echo.Context:
		ctx = v.Request().Context()
	case context.Context:
		ctx = v
	default:
		panic("invalid context, must be echo.Context or context.Context")
	}

	rc, _ := ctx.Value(REQUEST_CONTEXT_KEY).(RequestContext)
	return rc
}
