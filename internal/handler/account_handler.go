package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moneta/internal/errors"
	"moneta/internal/service"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents an account creation request.
type CreateAccountRequest struct {
	Type string `json:"type" form:"type"`
}

// CreateAccount godoc
// @Summary Open an additional account
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account data"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	account, err := h.accountService.CreateAccount(c.Request().Context(), claims.Username, req.Type)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, account)
}

// ListAccounts godoc
// @Summary List the authenticated user's accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	accounts, err := h.accountService.ListAccounts(c.Request().Context(), claims.Username)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, accounts)
}
