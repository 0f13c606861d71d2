package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/environment"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/logger"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/requestid"
)

// NewErrorHandler returns an ErrorHandler that answers with a JSON ErrorBody.
// HTTPError values keep their code and key; anything else becomes a 500.
// Client errors are logged at warn level, server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		status, key := http.StatusInternalServerError, "Internal server error"

		var httpErr HTTPError
		if errors.As(err, &httpErr) {
			status, key = httpErr.Code, httpErr.Error()
		}

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		// Development responses carry the internal error to speed up debugging.
		detail := ""
		if status >= http.StatusInternalServerError && environment.IsDevelopment(r.Context()) {
			detail = err.Error()
		}

		if renderErr := JSONError(status, key, detail).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
