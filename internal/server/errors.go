package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/capitol/models"
	"go.uber.org/zap"
)

// ErrorPage is the view model for the error template.
type ErrorPage struct {
	Code    int
	Message string
}

// statusFor maps a handler error to its HTTP status and the message shown
// to the visitor. Internal errors never leak their text.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, models.ErrRegionNotFound):
		return http.StatusNotFound, "Region not found"
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := statusFor(err)
		req := c.Request()
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Int("status", code),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}
		if req.Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if rerr := c.Render(code, "error", ErrorPage{Code: code, Message: msg}); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}
