package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	authsvc "github.com/Aashutosh1201/rentall-web-sub001/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/users/register
func (h *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	t, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
		case errors.Is(err, authsvc.ErrPhoneTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "phone already registered"})
		case errors.Is(err, authsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("register", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "verification codes sent",
		"email":      t.Email,
		"expires_at": t.ExpiresAt,
	})
}

// POST /v1/users/verify-email
func (h *Controller) VerifyEmail(c echo.Context) error {
	return h.verify(c, h.Svc.VerifyEmail)
}

// POST /v1/users/verify-phone
func (h *Controller) VerifyPhone(c echo.Context) error {
	return h.verify(c, h.Svc.VerifyPhone)
}

func (h *Controller) verify(c echo.Context, fn func(ctx context.Context, req model.VerifyOTPReq) (*authsvc.VerifyResult, error)) error {
	var req model.VerifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	res, err := fn(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrSignupNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "signup not found"})
		case errors.Is(err, authsvc.ErrSignupExpired):
			return c.JSON(http.StatusGone, echo.Map{"message": "signup expired, register again"})
		case errors.Is(err, authsvc.ErrOTPExpired):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "code expired"})
		case errors.Is(err, authsvc.ErrOTPInvalid):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid code"})
		case errors.Is(err, authsvc.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "too many attempts"})
		default:
			h.Log.Error("verify otp", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

// POST /v1/users/login
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCreds) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		h.Log.Error("login", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": u})
}
