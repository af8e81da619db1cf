package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"moneta/internal/errors"
	"moneta/internal/service"
)

// LoanHandler handles loan endpoints for clients and managers.
type LoanHandler struct {
	loanService service.LoanService
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequestRequest represents a client's loan application.
type LoanRequestRequest struct {
	Amount string `json:"amount" form:"amount" validate:"required"`
	Term   int    `json:"term" form:"term" validate:"required,gt=0"`
}

// RepayRequest represents a loan repayment.
type RepayRequest struct {
	AccountNumber string `json:"account_number" form:"account_number" validate:"required"`
	Amount        string `json:"amount" form:"amount" validate:"required"`
}

// RequestLoan godoc
// @Summary Request a loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LoanRequestRequest true "Loan application"
// @Success 201 {object} model.Loan
// @Failure 400 {object} errors.ErrorResponse
// @Router /loans [post]
func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req LoanRequestRequest
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

	principal, httpErr := parseAmount(req.Amount)
	if httpErr != nil {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	loan, err := h.loanService.Request(c.Request().Context(), claims.Username, principal, req.Term)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, loan)
}

// ListOwnLoans godoc
// @Summary List the authenticated client's loans
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Loan
// @Router /loans [get]
func (h *LoanHandler) ListOwnLoans(c echo.Context) error {
	claims, ok := currentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	loans, err := h.loanService.ListForUser(c.Request().Context(), claims.Username)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, loans)
}

// Repay godoc
// @Summary Repay part or all of an approved loan
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param request body RepayRequest true "Repayment data"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /loans/{id}/repay [post]
func (h *LoanHandler) Repay(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return err
	}

	var req RepayRequest
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
	if err := h.loanService.Repay(c.Request().Context(), claims.Username, loanID, req.AccountNumber, amount); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "completed",
		Message: "repayment accepted",
	})
}

// ListPending godoc
// @Summary List pending loan requests (manager queue)
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Loan
// @Router /loans/pending [get]
func (h *LoanHandler) ListPending(c echo.Context) error {
	loans, err := h.loanService.ListPending(c.Request().Context())
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, loans)
}

// Approve godoc
// @Summary Approve a pending loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} OperationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /loans/{id}/approve [post]
func (h *LoanHandler) Approve(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return err
	}

	if err := h.loanService.Approve(c.Request().Context(), loanID); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "approved",
		Message: "loan approved, funds credited",
	})
}

// Reject godoc
// @Summary Reject a pending loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} OperationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /loans/{id}/reject [post]
func (h *LoanHandler) Reject(c echo.Context) error {
	loanID, err := parseLoanID(c)
	if err != nil {
		return err
	}

	if err := h.loanService.Reject(c.Request().Context(), loanID); err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, OperationResponse{
		Status:  "rejected",
		Message: "loan rejected",
	})
}

func parseLoanID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid loan id",
			Code:  "INVALID_LOAN_ID",
		})
	}
	return uint(id), nil
}
