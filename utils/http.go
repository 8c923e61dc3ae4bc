package utils

import (
	"encoding/json"
	"net/http"

	"github.com/casting-agency/api/auth0"
)

// ErrorResponse is the standard error envelope. Error carries the HTTP
// status, matching the upstream contract; Code carries the authorization
// taxonomy code when the failure came from the auth layer.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error envelope with the given status and message
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// WriteBadRequest writes a 400 Bad Request envelope
func WriteBadRequest(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "bad request"
	}
	return WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found envelope
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "resource not found"
	}
	return WriteError(w, http.StatusNotFound, message)
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed envelope
func WriteMethodNotAllowed(w http.ResponseWriter) error {
	return WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// WriteUnauthorized writes a 401 Unauthorized envelope
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "authentication required"
	}
	return WriteError(w, http.StatusUnauthorized, message)
}

// WriteInternalServerError writes a 500 Internal Server Error envelope
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "internal server error"
	}
	return WriteError(w, http.StatusInternalServerError, message)
}

// WriteAuthError translates an authorization failure into the error
// envelope, exposing its taxonomy code. Raw claim contents never reach
// the response.
func WriteAuthError(w http.ResponseWriter, authErr *auth0.Error) error {
	return WriteJSON(w, authErr.Status, ErrorResponse{
		Success: false,
		Error:   authErr.Status,
		Message: authErr.Message,
		Code:    authErr.Code,
	})
}
