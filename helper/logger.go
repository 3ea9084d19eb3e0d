package helper

import (
	"io"
	"log/slog"

	qh "github.com/siherrmann/queuer/helper"
)

// NewLogger creates the pretty printing slog logger used by the server.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := qh.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: level,
		},
	}
	return slog.New(qh.NewPrettyHandler(w, opts))
}
