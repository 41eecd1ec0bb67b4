package dto

import (
	"net/http"
	"strings"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation codes share the INVALID_ prefix and fall through to 400
// unless listed here.
var errorCodeHTTPStatus = map[string]int{
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,

	"FORBIDDEN": http.StatusForbidden,

	"NOT_FOUND":         http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"USER_NOT_FOUND":    http.StatusNotFound,

	"ALREADY_EXISTS": http.StatusConflict,
	"EMAIL_TAKEN":    http.StatusConflict,
	"DUPLICATE_CODE": http.StatusConflict,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"EMPTY_BACKUP":       http.StatusUnprocessableEntity,

	"RATE_LIMITED": http.StatusTooManyRequests,

	"RELAY_FAILED":           http.StatusBadGateway,
	"WEBHOOK_NOT_CONFIGURED": http.StatusBadGateway,

	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unlisted INVALID_* codes are client errors; anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
