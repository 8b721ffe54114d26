package middleware

import (
	"errors"
	"net/http"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler as {"message": ...}.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := http.StatusInternalServerError, map[string]string{"message": "Internal server error."}

		var he *echo.HTTPError
		var ae *apperr.Error
		switch {
		case errors.As(err, &ae):
			code = ae.Status()
			body["message"] = ae.Message
			if ae.Kind == apperr.KindStorage {
				body["error"] = "storage unavailable"
			}
		case errors.As(err, &he):
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				body["message"] = msg
			} else {
				body["message"] = http.StatusText(he.Code)
			}
		default:
			logger.Error("unhandled error",
				zap.String("path", c.Path()),
				zap.String("requestId", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Warn("write error response failed", zap.Error(err))
		}
	}
}
