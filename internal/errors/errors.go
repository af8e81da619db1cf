package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds is returned when an account balance cannot cover an operation.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrLoanNotFound is returned when a loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanNotActive is returned when a repayment targets a loan that is not approved.
	ErrLoanNotActive = errors.New("loan is not active")
	// ErrOverpayment is returned when a repayment exceeds the remaining debt tolerance.
	ErrOverpayment = errors.New("repayment exceeds remaining debt")
	// ErrDuplicateUsername is returned when registering an already-taken username.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrForbidden is returned on role violations, e.g. blocking an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidAmount is returned when an amount or term is non-numeric or non-positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidState is returned when a loan decision targets a non-pending loan.
	ErrInvalidState = errors.New("loan is not pending")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserBlocked is returned when a blocked user attempts to sign in.
	ErrUserBlocked = errors.New("user is blocked")
	// ErrAppealNotFound is returned when an appeal is not found.
	ErrAppealNotFound = errors.New("appeal not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrInsufficientFunds):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_FUNDS")
	case errors.Is(err, ErrLoanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOAN_NOT_FOUND")
	case errors.Is(err, ErrLoanNotActive):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LOAN_NOT_ACTIVE")
	case errors.Is(err, ErrOverpayment):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OVERPAYMENT")
	case errors.Is(err, ErrDuplicateUsername):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USERNAME")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BLOCKED")
	case errors.Is(err, ErrAppealNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPEAL_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
