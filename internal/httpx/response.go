// Package httpx holds the JSON response helpers shared by every handler.
// Error bodies always follow the same shape: {"error": "<snake_case_code>",
// "details": ...}, where details is omitted unless the error carries
// field-level information such as validation violations.
package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(payload)
	if err != nil {
		// avoid writing partial JSON
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// ValidationError writes the standard 400 response for failed input
// validation, with the per-field violations as details.
func ValidationError(w http.ResponseWriter, details any) {
	JSONError(w, http.StatusBadRequest, "validation_failed", details)
}
