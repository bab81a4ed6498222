package echoServer

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the fallthrough for anything a controller did not
// map itself: echo.HTTPError keeps its status, everything else is a
// 500 with a generic body and the real error logged server-side.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := "internal error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}

		if code >= http.StatusInternalServerError {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Error("unhandled error", "err", err, "path", c.Path(), "req_id", rid)
		}

		_ = c.JSON(code, echo.Map{"message": msg})
	}
}
