package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error shape every endpoint returns. The message is
// always human-readable; driver errors never leak into it.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response with the given status
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError sends a JSON error response
func RespondError(w http.ResponseWriter, status int, errLabel, message string) {
	RespondJSON(w, status, ErrorBody{
		Error:   errLabel,
		Message: message,
	})
}

// Standard error labels used across handlers
const (
	LabelValidationError = "Validation error"
	LabelInvalidID       = "Invalid ID"
	LabelNotFound        = "Product not found"
	LabelTooManyRequests = "Too many requests"
	LabelInternalError   = "Internal server error"
	LabelUnavailable     = "Payment service unavailable"
)

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
