package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	requestsvc "github.com/Aashutosh1201/rentall-web-sub001/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/requests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		switch requestsvc.Code(err) {
		case requestsvc.ErrHubNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "hub not found"})
		case requestsvc.ErrBadWindow:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid need window"})
		default:
			h.Log.Error("request create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /v1/requests
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.ListOpen(c.Request().Context())
	if err != nil {
		h.Log.Error("request list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/requests/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	req, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if requestsvc.Code(err) == requestsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		}
		h.Log.Error("request detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, req)
}
