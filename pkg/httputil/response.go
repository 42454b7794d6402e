// Package httputil provides the JSON response envelope shared by every
// endpoint of the API.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Response is the uniform envelope returned by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, body Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteSuccess writes a 200 success envelope with optional data
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteFailure writes a failure envelope with the given status code
func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Message: message,
	})
}

// WriteBadRequest writes a bad request failure (400)
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusBadRequest, message)
}

// WriteUnauthorized writes an unauthenticated failure (401)
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusUnauthorized, message)
}

// WriteForbidden writes an unauthorized failure (403)
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusForbidden, message)
}

// WriteInternalError writes an internal server error failure (500)
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusInternalServerError, message)
}
