package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Aashutosh1201/rentall-web-sub001/app/echoServer/jwtx"
	"github.com/Aashutosh1201/rentall-web-sub001/model"
	usersvc "github.com/Aashutosh1201/rentall-web-sub001/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// GET /v1/users/me
func (h *Controller) Me(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	u, err := h.Svc.Me(c.Request().Context(), uid)
	if err != nil {
		if usersvc.Code(err) == usersvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("me", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// POST /v1/users/me/kyc
func (h *Controller) SubmitKYC(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	fh, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "document file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable document"})
	}
	defer f.Close()

	u, err := h.Svc.SubmitKYC(c.Request().Context(), uid, fh.Filename, f)
	if err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrBadDocument:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "only jpg, jpeg and png documents are accepted"})
		case usersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case usersvc.ErrKYCTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "kyc already submitted or resolved"})
		default:
			h.Log.Error("kyc submit", "err", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"message": "document upload failed"})
		}
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"message":    "kyc submitted",
		"kyc_status": u.KYCStatus,
	})
}

// POST /v1/users/:id/kyc/decision
func (h *Controller) DecideKYC(c echo.Context) error {
	role, err := jwtx.RoleFromContext(c)
	if err != nil || role != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.KYCDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.DecideKYC(c.Request().Context(), id, req.Approve); err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		case usersvc.ErrKYCTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no pending kyc submission"})
		default:
			h.Log.Error("kyc decision", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "decision recorded"})
}
