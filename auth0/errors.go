package auth0

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure codes for the authorization error taxonomy. Every code maps to
// HTTP 401; forbidden is deliberately kept at 401 to match the upstream
// contract instead of 403.
const (
	CodeMissingHeader    = "missing_header"
	CodeMalformedHeader  = "malformed_header"
	CodeInvalidHeader    = "invalid_header"
	CodeUnknownKey       = "unknown_key"
	CodeInvalidSignature = "invalid_signature"
	CodeTokenExpired     = "token_expired"
	CodeInvalidClaims    = "invalid_claims"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
)

// Error is an authorization-domain failure carrying a machine-readable
// code and a human description. Infrastructure failures (JWKS fetch,
// malformed key documents) are plain errors, never an *Error.
type Error struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an authorization error with the given code and description
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// AsAuthError extracts an *Error from an error chain
func AsAuthError(err error) (*Error, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
