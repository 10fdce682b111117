// Package httpx provides JSON response utilities for the command API.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/minibooks/minibooks/internal/shared"
)

// ErrorResponse is the wire form of a rejected command: a stable code, a
// human readable message, and optional diagnostic detail.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

func statusForCode(code string) int {
	switch code {
	case shared.CodeValidation:
		return http.StatusBadRequest
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps a failure to its HTTP status and wire form. Storage and
// unknown detail is redacted when redactDetail is set; validation, not-found
// and conflict detail is always user-facing.
func RespondError(w http.ResponseWriter, err error, redactDetail bool) {
	e := shared.AsError(err)
	resp := ErrorResponse{Code: e.Code, Message: e.Message, Detail: e.Detail}
	if redactDetail && (e.Code == shared.CodeDatabase || e.Code == shared.CodeUnknown) {
		resp.Detail = ""
	}
	JSON(w, statusForCode(e.Code), resp)
}
