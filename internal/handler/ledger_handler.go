package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"moneta/internal/errors"
	"moneta/internal/service"
)

// LedgerHandler handles deposit, transfer, and history endpoints.
type LedgerHandler struct {
	ledgerService service.LedgerService
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	AccountNumber string `json:"account_number" form:"account_number" validate:"required"`
	Amount        string `json:"amount" form:"amount" validate:"required"`
}

// TransferRequest represents a transfer request.
type TransferRequest struct {
	AccountNumber string `json:"account_number" form:"account_number" validate:"required"`
	ToAccount     string `json:"to_account" form:"to_account" validate:"required"`
	Amount        string `json:"amount" form:"amount" validate:"required"`
}

// OperationResponse represents the outcome of a ledger operation.
type OperationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// parseAmount rejects malformed numerics before they reach the ledger.
func parseAmount(raw string) (decimal.Decimal, *errors.HTTPError) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.NewHTTPError(http.StatusBadRequest, "invalid amount", "INVALID_AMOUNT")
	}
	return amount, nil
}

// Deposit godoc
// @Summary Deposit funds into an own account
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositRequest true "Deposit data"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/deposit [post]
func (h *LedgerHandler) Deposit(c echo.Context) error {
	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, httpErr := parseAmount(req.Amount)
	if httpErr != nil {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if err := h.ledgerService.Deposit(c.Request().Context(), claims.Username, req.AccountNumber, amount); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "completed",
		Message: "deposit completed",
	})
}

// Transfer godoc
// @Summary Transfer funds between accounts
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer data"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /transactions/transfer [post]
func (h *LedgerHandler) Transfer(c echo.Context) error {
	var req TransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, httpErr := parseAmount(req.Amount)
	if httpErr != nil {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if err := h.ledgerService.Transfer(c.Request().Context(), claims.Username, req.AccountNumber, req.ToAccount, amount); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "completed",
		Message: "transfer completed",
	})
}

// History godoc
// @Summary List the authenticated user's transaction history
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Transaction
// @Router /transactions/history [get]
func (h *LedgerHandler) History(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	history, err := h.ledgerService.History(c.Request().Context(), claims.Username)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, history)
}

// AccountHistory godoc
// @Summary List one account's transaction history
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param number path string true "Account number"
// @Success 200 {array} model.Transaction
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /accounts/{number}/history [get]
func (h *LedgerHandler) AccountHistory(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	history, err := h.ledgerService.AccountHistory(c.Request().Context(), claims.Username, c.Param("number"))
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, history)
}
