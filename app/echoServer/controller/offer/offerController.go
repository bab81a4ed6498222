package offer

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	offersvc "github.com/Aashutosh1201/rentall-web-sub001/service/offer"
)

type Controller struct {
	Svc offersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/requests/:id/offers
func (h *Controller) Submit(c echo.Context) error {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || requestID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.CreateOfferReq
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

	o, err := h.Svc.Submit(c.Request().Context(), uid, requestID, req.Price, req.Message)
	if err != nil {
		switch offersvc.Code(err) {
		case offersvc.ErrRequestNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		case offersvc.ErrRequestClosed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "request no longer open"})
		case offersvc.ErrOwnOffer:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "cannot offer on own request"})
		case offersvc.ErrBadPrice:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "price must be positive"})
		default:
			h.Log.Error("offer submit", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, o)
}

// GET /v1/requests/:id/offers
func (h *Controller) ListByRequest(c echo.Context) error {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || requestID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	rows, err := h.Svc.ListByRequest(c.Request().Context(), requestID)
	if err != nil {
		if offersvc.Code(err) == offersvc.ErrRequestNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		}
		h.Log.Error("offer list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/offers/:id/accept
func (h *Controller) Accept(c echo.Context) error {
	offerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || offerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Accept(c.Request().Context(), uid, offerID)
	if err != nil {
		switch offersvc.Code(err) {
		case offersvc.ErrOfferNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "offer not found"})
		case offersvc.ErrRequestNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		case offersvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case offersvc.ErrRequestClosed:
			return c.JSON(http.StatusConflict, echo.Map{"message": "request no longer open"})
		default:
			h.Log.Error("offer accept", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"rent_id":        out.RentID,
		"status":         "pending_payment",
		"payment_link":   out.PaymentLink,
		"payment_due_at": out.PaymentDueAt,
	})
}
