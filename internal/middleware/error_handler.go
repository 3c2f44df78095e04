package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/pkg/logger"
	"github.com/tukue/CRM-app-saas/prometheus"
	"go.uber.org/zap"
)

// errorBody is the uniform JSON error shape.
type errorBody struct {
	Error   string      `json:"error"`
	Status  int         `json:"status,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler returns a centralized echo.HTTPErrorHandler. Typed apperr
// values map to their status and body; everything else becomes a 500 whose
// cause is logged server-side and, outside development, hidden from the
// client. Every handled error increments the error counter.
func ErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := logger.FromEcho(c)

		status := http.StatusInternalServerError
		body := errorBody{Error: "internal server error", Status: status}

		if appErr, ok := apperr.As(err); ok {
			status = appErr.Status()
			body = errorBody{Error: appErr.Message, Status: status, Details: appErr.Details}
			prometheus.RecordError(appErr.MetricType())

			if status >= 500 {
				log.Error("Request failed",
					zap.String("path", c.Request().URL.Path),
					zap.Error(err),
					zap.Stack("stack"))
				if development {
					body.Details = err.Error()
				} else {
					body.Details = nil
				}
			}
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			body = errorBody{Error: http.StatusText(status), Status: status}
			if msg, ok := httpErr.Message.(string); ok {
				body.Error = msg
			}
			if status >= 500 {
				prometheus.RecordError("internal")
			} else {
				prometheus.RecordError("validation")
			}
		} else {
			prometheus.RecordError("internal")
			log.Error("Unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
				zap.Stack("stack"))
			if development {
				body.Details = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
