// internal/app/system/response/response.go
package response

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the JSON error envelope. Clients branch on
// these; the human-readable message may change, the codes do not.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeEmailExists          = "EMAIL_EXISTS"
	CodeAlreadyCheckedIn     = "ALREADY_CHECKED_IN"
	CodeCodeAllocationFailed = "CODE_ALLOCATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeInvalidRole          = "INVALID_ROLE"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	// Guest carries the current guest record on ALREADY_CHECKED_IN
	// conflicts so check-in stations can show who handled it and when.
	Guest interface{} `json:"guest,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorBody{Error: message, Code: code})
}

// WriteFieldErrors writes a 400 with per-field validation messages.
func WriteFieldErrors(w http.ResponseWriter, message string, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorBody{
		Error:  message,
		Code:   CodeInvalidInput,
		Fields: fields,
	})
}

// WriteAlreadyCheckedIn writes the 409 conflict envelope carrying the
// guest's current state.
func WriteAlreadyCheckedIn(w http.ResponseWriter, guest interface{}) {
	WriteJSON(w, http.StatusConflict, ErrorBody{
		Error: "guest is already checked in",
		Code:  CodeAlreadyCheckedIn,
		Guest: guest,
	})
}

// Convenience writers for common errors.

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimited)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}
