// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	userrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/user"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// KYCGate blocks any mutating marketplace action for accounts that
// have not passed identity verification. Must run after the JWT
// middleware has put user_id on the context; denial produces no side
// effects.
func KYCGate(users userrepo.Repo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("user_id").(int64)
			if !ok || uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}

			status, err := users.KYCStatus(c.Request().Context(), uid)
			if err != nil {
				c.Logger().Errorf("[KYC] status lookup failed user_id=%d err=%v", uid, err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			if status != model.KYCVerified {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "identity verification required",
					"code":    "KYC_REQUIRED",
				})
			}
			return next(c)
		}
	}
}
