package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeFeatureDisabled    ErrorCode = "COMMON_015"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Short aliases used by the factory helpers.
const (
	CodeUnknown      ErrorCode = "UNKNOWN"
	CodeOK           ErrorCode = "OK"
	CodeInternal               = ErrCodeInternal
	CodeInvalidParam           = ErrCodeBadRequest
	CodeUnauthorized           = ErrCodeUnauthorized
	CodeForbidden              = ErrCodeForbidden
	CodeNotFound               = ErrCodeNotFound
	CodeConflict               = ErrCodeConflict
	CodeRateLimit              = ErrCodeTooManyRequests
	CodeUnavailable            = ErrCodeServiceUnavailable
)

// Product Module Error Codes
const (
	ErrCodeProductNotFound        ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeProductInvalid         ErrorCode = "PRODUCT_INVALID"
	ErrCodeInvoiceTooLarge        ErrorCode = "INVOICE_TOO_LARGE"
	ErrCodeInvoiceTypeUnsupported ErrorCode = "INVOICE_TYPE_UNSUPPORTED"
	ErrCodeInvoiceMissing         ErrorCode = "INVOICE_MISSING"
)

// User / Auth Error Codes
const (
	ErrCodeUserNotFound           ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserEmailTaken         ErrorCode = "USER_EMAIL_TAKEN"
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrCodeAuthTokenMissing       ErrorCode = "AUTH_TOKEN_MISSING"
	ErrCodeAuthTokenInvalid       ErrorCode = "AUTH_TOKEN_INVALID"
)

// Notification Error Codes
const (
	ErrCodeNotificationDuplicate ErrorCode = "NOTIFICATION_DUPLICATE"
	ErrCodeDispatchFailed        ErrorCode = "NOTIFICATION_DISPATCH_FAILED"
)

// AI Error Codes
const (
	ErrCodeAIUnavailable ErrorCode = "AI_UNAVAILABLE"
	ErrCodeAIEmpty       ErrorCode = "AI_EMPTY_COMPLETION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusBadRequest,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeFeatureDisabled:    http.StatusNotImplemented,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeProductNotFound:        http.StatusNotFound,
	ErrCodeProductInvalid:         http.StatusBadRequest,
	ErrCodeInvoiceTooLarge:        http.StatusBadRequest,
	ErrCodeInvoiceTypeUnsupported: http.StatusBadRequest,
	ErrCodeInvoiceMissing:         http.StatusBadRequest,

	ErrCodeUserNotFound:           http.StatusNotFound,
	ErrCodeUserEmailTaken:         http.StatusBadRequest,
	ErrCodeAuthInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAuthTokenMissing:       http.StatusUnauthorized,
	ErrCodeAuthTokenInvalid:       http.StatusForbidden,

	ErrCodeNotificationDuplicate: http.StatusConflict,
	ErrCodeDispatchFailed:        http.StatusBadGateway,

	ErrCodeAIUnavailable: http.StatusServiceUnavailable,
	ErrCodeAIEmpty:       http.StatusBadGateway,
}

// HTTPStatusForCode returns the HTTP status for code. Unmapped codes are
// classified by suffix, falling back to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	s := code.String()
	switch {
	case strings.HasSuffix(s, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(s, "_INVALID"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns a generic client-safe message for code.
func DefaultMessageForCode(code ErrorCode) string {
	switch HTTPStatusForCode(code) {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusTooManyRequests:
		return "Too many requests"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	}
	return "Server error"
}
