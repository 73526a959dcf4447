package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-minter/internal/domain"
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

	// Mint and administration errors
	ErrCodeWrongStage            ErrorCode = "wrong_stage"
	ErrCodeInvalidAmount         ErrorCode = "invalid_amount"
	ErrCodeAddressCapExceeded    ErrorCode = "address_cap_exceeded"
	ErrCodeSupplyExceeded        ErrorCode = "supply_exceeded"
	ErrCodeNotWhitelisted        ErrorCode = "not_whitelisted"
	ErrCodeInvalidProof          ErrorCode = "invalid_proof"
	ErrCodeWhitelistCapExceeded  ErrorCode = "whitelist_cap_exceeded"
	ErrCodeInsufficientPayment   ErrorCode = "insufficient_payment"
	ErrCodeUnknownToken          ErrorCode = "unknown_token"
	ErrCodeInvalidConfig         ErrorCode = "invalid_config"
	ErrCodeInvalidAuctionParams  ErrorCode = "invalid_auction_params"
	ErrCodeWhitelistModeMismatch ErrorCode = "whitelist_mode_mismatch"
	ErrCodeInvalidStage          ErrorCode = "invalid_stage"
	ErrCodeZeroAddress           ErrorCode = "zero_address"
	ErrCodeNothingToWithdraw     ErrorCode = "nothing_to_withdraw"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// ErrorResponse is the envelope every error is returned in
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

type domainError struct {
	err    error
	status int
	code   ErrorCode
}

var domainErrors = []domainError{
	{domain.ErrWrongStage, http.StatusConflict, ErrCodeWrongStage},
	{domain.ErrInvalidAmount, http.StatusBadRequest, ErrCodeInvalidAmount},
	{domain.ErrAddressCapExceeded, http.StatusConflict, ErrCodeAddressCapExceeded},
	{domain.ErrSupplyExceeded, http.StatusConflict, ErrCodeSupplyExceeded},
	{domain.ErrNotWhitelisted, http.StatusForbidden, ErrCodeNotWhitelisted},
	{domain.ErrInvalidProof, http.StatusForbidden, ErrCodeInvalidProof},
	{domain.ErrWhitelistCapExceeded, http.StatusConflict, ErrCodeWhitelistCapExceeded},
	{domain.ErrInsufficientPayment, http.StatusPaymentRequired, ErrCodeInsufficientPayment},
	{domain.ErrUnauthorized, http.StatusForbidden, ErrCodeUnauthorized},
	{domain.ErrUnknownToken, http.StatusNotFound, ErrCodeUnknownToken},
	{domain.ErrInvalidConfig, http.StatusBadRequest, ErrCodeInvalidConfig},
	{domain.ErrInvalidAuctionParams, http.StatusBadRequest, ErrCodeInvalidAuctionParams},
	{domain.ErrWhitelistModeMismatch, http.StatusConflict, ErrCodeWhitelistModeMismatch},
	{domain.ErrInvalidStage, http.StatusBadRequest, ErrCodeInvalidStage},
	{domain.ErrZeroAddress, http.StatusBadRequest, ErrCodeZeroAddress},
	{domain.ErrNothingToWithdraw, http.StatusConflict, ErrCodeNothingToWithdraw},
}

// FromDomainError maps a contract error to its HTTP status and API error.
// Unknown errors map to 500 without exposing the error text.
func FromDomainError(err error) (int, *APIError) {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return d.status, &APIError{Code: d.code, Message: d.err.Error()}
		}
	}
	return http.StatusInternalServerError, NewInternalError("Internal server error")
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

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}
