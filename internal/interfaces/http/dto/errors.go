package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in ErrorInfo.Code. Domain errors keep their own code,
// so most of these mirror shared.DomainError codes one-to-one.

// General error codes
const (
	ErrCodeInternal = "INTERNAL_ERROR"
)

// Validation error codes
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidJSON  = "INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "TOKEN_MAX_REFRESH"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Resource error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodePaymentNotEligible    = "PAYMENT_NOT_ELIGIBLE"
	ErrCodePaymentMethodRequired = "PAYMENT_METHOD_REQUIRED"
	ErrCodeNoRateSelected        = "NO_RATE_SELECTED"
	ErrCodeLabelPurchaseFailed   = "LABEL_PURCHASE_FAILED"
	ErrCodeNoItems               = "NO_ITEMS"
	ErrCodeImageLimitExceeded    = "IMAGE_LIMIT_EXCEEDED"
)

// Upstream error codes
const (
	ErrCodeShippingProvider = "SHIPPING_PROVIDER_ERROR"
	ErrCodePaymentProvider  = "PAYMENT_PROVIDER_ERROR"
	ErrCodeStorage          = "STORAGE_ERROR"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// Replay protection error codes
const (
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors
	ErrCodeInvalidState:          http.StatusBadRequest,
	ErrCodeInsufficientStock:     http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:             http.StatusBadRequest,
	ErrCodePaymentNotEligible:    http.StatusBadRequest,
	ErrCodePaymentMethodRequired: http.StatusBadRequest,
	ErrCodeNoRateSelected:        http.StatusBadRequest,
	ErrCodeLabelPurchaseFailed:   http.StatusBadRequest,
	ErrCodeNoItems:               http.StatusBadRequest,
	ErrCodeImageLimitExceeded:    http.StatusUnprocessableEntity,

	// Upstream errors -> 502 Bad Gateway
	ErrCodeShippingProvider: http.StatusBadGateway,
	ErrCodePaymentProvider:  http.StatusBadGateway,
	ErrCodeStorage:          http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeDuplicateRequest: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are field validation failures and map to 400;
// anything else unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
