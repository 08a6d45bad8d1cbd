/*
Package resp provides helper functions for sending HTTP JSON responses.

Success responses carry the operation payload directly. Every failure,
regardless of its internal error code, is rendered to clients in the uniform
shape {"error": message} with the HTTP status mapped from the error.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"doodlepair/internal/pkg/errs"
	"doodlepair/internal/pkg/logx"
)

// ErrorResponse is the uniform client-visible failure shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON sets the Content-Type and sends the JSON payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondOK sends a successful HTTP response (HTTP 200 OK) with the payload as-is.
func RespondOK(w http.ResponseWriter, r *http.Request, payload any) {
	RespondJSON(w, r, http.StatusOK, payload)
}

// RespondError sends the uniform error shape for the given application error.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorResponse{Error: customErr.Message})
}
