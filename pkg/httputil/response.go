// Package httputil writes the JSON responses produced by simulated requests
// and rendered resources.
package httputil

import (
	"encoding/json"
	"net/http"
)

// ContentTypeJSON is the Content-Type of every JSON response.
const ContentTypeJSON = "application/json"

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteMessage writes {"message": message} with the given status code.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteValidationErrors writes a 422 response carrying the summary message
// and the error messages grouped by field.
func WriteValidationErrors(w http.ResponseWriter, message string, errors map[string][]string) {
	if errors == nil {
		errors = map[string][]string{}
	}
	WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": message,
		"errors":  errors,
	})
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusForbidden, message)
}

// WriteServerError writes a 500 Internal Server Error response.
func WriteServerError(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusInternalServerError, message)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteEmpty writes a status code with no body.
func WriteEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
