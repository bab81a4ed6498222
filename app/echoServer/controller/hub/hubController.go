package hub

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	hubsvc "github.com/Aashutosh1201/rentall-web-sub001/service/hub"
)

type Controller struct {
	Svc hubsvc.Service
	Log *slog.Logger
}

// GET /v1/hubs
func (h *Controller) List(c echo.Context) error {
	hubs, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("hub list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": hubs})
}

// GET /v1/hubs/near?lat=&lng=
func (h *Controller) Near(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "lat and lng are required"})
	}

	hubs, err := h.Svc.Near(c.Request().Context(), lat, lng)
	if err != nil {
		h.Log.Error("hub near", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": hubs})
}
