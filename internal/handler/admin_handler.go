package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"moneta/internal/errors"
	"moneta/internal/service"
)

// AdminHandler handles administrator endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// BlockRequest represents a block/unblock request.
type BlockRequest struct {
	Blocked bool `json:"blocked" form:"blocked"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// SetBlockStatus godoc
// @Summary Block or unblock a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body BlockRequest true "Block flag"
// @Success 200 {object} OperationResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{username}/block [post]
func (h *AdminHandler) SetBlockStatus(c echo.Context) error {
	var req BlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	username := c.Param("username")
	if err := h.adminService.SetBlockStatus(c.Request().Context(), username, req.Blocked); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	status := "unblocked"
	if req.Blocked {
		status = "blocked"
	}
	return c.JSON(http.StatusOK, OperationResponse{
		Status:  status,
		Message: "user " + status,
	})
}

// ListOpenAppeals godoc
// @Summary List open appeals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Appeal
// @Router /admin/appeals [get]
func (h *AdminHandler) ListOpenAppeals(c echo.Context) error {
	appeals, err := h.adminService.ListOpenAppeals(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, appeals)
}

// ResolveAppeal godoc
// @Summary Resolve an appeal and unblock its user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appeal ID"
// @Success 200 {object} OperationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/appeals/{id}/resolve [post]
func (h *AdminHandler) ResolveAppeal(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid appeal id",
			Code:  "INVALID_APPEAL_ID",
		})
	}

	if err := h.adminService.ResolveAppeal(c.Request().Context(), uint(id)); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "resolved",
		Message: "appeal resolved, user unblocked",
	})
}
