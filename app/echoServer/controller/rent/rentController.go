package rent

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	rentsvc "github.com/Aashutosh1201/rentall-web-sub001/service/rent"
)

type Controller struct {
	Svc rentsvc.Service
	Log *slog.Logger
}

// GET /v1/rents/my
func (h *Controller) MyRents(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rows, err := h.Svc.My(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("rents my", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rents/:id
func (h *Controller) Detail(c echo.Context) error {
	id, uid, ok := h.ids(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rent, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.mapErr(c, "rent detail", err)
	}
	return c.JSON(http.StatusOK, rent)
}

// POST /v1/rents/:id/activate
func (h *Controller) Activate(c echo.Context) error {
	return h.act(c, "rent activate", h.Svc.Activate, "rental started")
}

// POST /v1/rents/:id/complete
func (h *Controller) Complete(c echo.Context) error {
	return h.act(c, "rent complete", h.Svc.Complete, "rental completed")
}

// POST /v1/rents/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	return h.act(c, "rent cancel", h.Svc.Cancel, "rental cancelled")
}

func (h *Controller) act(c echo.Context, op string,
	fn func(ctx context.Context, userID, rentID int64) error, okMsg string) error {

	id, uid, ok := h.ids(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := fn(c.Request().Context(), uid, id); err != nil {
		return h.mapErr(c, op, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": okMsg})
}

func (h *Controller) ids(c echo.Context) (rentID, userID int64, ok bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, false
	}
	uid, _ := c.Get("user_id").(int64)
	return id, uid, true
}

func (h *Controller) mapErr(c echo.Context, op string, err error) error {
	switch rentsvc.Code(err) {
	case rentsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "rent not found"})
	case rentsvc.ErrNotParty, rentsvc.ErrNotLender:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case rentsvc.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": "invalid state transition"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
