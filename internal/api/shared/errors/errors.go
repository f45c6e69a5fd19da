package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodePaymentRequired  ErrorCode = "payment_required"

	// Server errors (5xx)
	ErrCodeInternalError  ErrorCode = "internal_error"
	ErrCodeServiceError   ErrorCode = "service_error"
	ErrCodeGatewayTimeout ErrorCode = "gateway_timeout"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// Class is the domain error class when the error comes from the ledger core
	Class string `json:"class,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// ErrorResponse is the envelope of every error response
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomainError maps a ledger error to its HTTP status and API error.
// Errors outside the domain taxonomy map to 500 with no details.
func FromDomainError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrCodeBadRequest, ErrCodeValidationFailed:
			return http.StatusBadRequest, apiErr
		case ErrCodeNotFound:
			return http.StatusNotFound, apiErr
		case ErrCodeUnauthorized:
			return http.StatusUnauthorized, apiErr
		case ErrCodeForbidden:
			return http.StatusForbidden, apiErr
		default:
			return http.StatusInternalServerError, apiErr
		}
	}

	class := domain.ErrorClass(err)
	build := func(code ErrorCode, message string) *APIError {
		return &APIError{Code: code, Message: message, Details: err.Error(), Class: class}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidParameters):
		return http.StatusBadRequest, build(ErrCodeValidationFailed, "Invalid parameters")
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, build(ErrCodeNotFound, "Content not found")
	case errors.Is(err, domain.ErrTokenNotFound):
		return http.StatusNotFound, build(ErrCodeNotFound, "Token not found")
	case errors.Is(err, domain.ErrAlreadyTokenized):
		return http.StatusConflict, build(ErrCodeConflict, "Content already tokenized")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, build(ErrCodePaymentRequired, "Insufficient funds")
	case errors.Is(err, domain.ErrWalletRejected):
		return http.StatusForbidden, build(ErrCodeForbidden, "Wallet rejected the request")
	case errors.Is(err, domain.ErrWrongNetwork), errors.Is(err, domain.ErrWalletUnavailable):
		return http.StatusConflict, build(ErrCodeConflict, "Wallet is not ready")
	case errors.Is(err, domain.ErrConfirmationTimeout):
		return http.StatusGatewayTimeout, build(ErrCodeGatewayTimeout, "Transaction not confirmed in time")
	case errors.Is(err, domain.ErrVerificationFailed),
		errors.Is(err, domain.ErrRegistryUnavailable),
		errors.Is(err, domain.ErrContractNotConfigured):
		return http.StatusBadGateway, build(ErrCodeServiceError, "Chain operation failed")
	}

	return http.StatusInternalServerError, &APIError{Code: ErrCodeInternalError, Message: "Internal server error"}
}
