package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the conduit error shape: {"errors": {"field": [messages...]}}.
// A message is a string or, for nested fields, an object.
type ErrorBody struct {
	Errors map[string][]any `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent; nothing useful to do on failure.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteErrors writes field errors in the conduit error shape.
func WriteErrors(w http.ResponseWriter, status int, errs map[string][]any) {
	WriteJSON(w, status, ErrorBody{Errors: errs})
}

// WriteError writes a single message for a single field.
func WriteError(w http.ResponseWriter, status int, field, message string) {
	WriteErrors(w, status, map[string][]any{field: {message}})
}

// Common error response helpers

// WriteUnprocessable writes a 422 with one field error
func WriteUnprocessable(w http.ResponseWriter, field, message string) {
	WriteError(w, http.StatusUnprocessableEntity, field, message)
}

// WriteUnauthorized writes a 401 Unauthorized error
func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "authorization", "authentication required")
}

// WriteForbidden writes a 403 Forbidden error
func WriteForbidden(w http.ResponseWriter) {
	WriteError(w, http.StatusForbidden, "authorization", "permission denied")
}

// WriteNotFound writes a 404 Not Found error for the named resource
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteError(w, http.StatusNotFound, resource, "not found")
}

// WriteInternalError writes a 500 Internal Server Error
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "server", "internal error")
}
