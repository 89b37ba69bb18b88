package errors

import (
	"errors"
	"net/http"
)

// Exception is an API-visible failure. Code is a stable machine-readable
// identifier clients may branch on; Message is for display.
type Exception struct {
	Message    string
	Code       string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode extracts the HTTP status for err, defaulting to 500 for
// anything that is not an Exception.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON error response shape.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Body builds the JSON error payload for err.
func Body(err error) ErrorBody {
	body := ErrorBody{Status: http.StatusInternalServerError, Message: "internal server error"}
	var appErr *Exception
	if errors.As(err, &appErr) {
		body.Status = appErr.StatusCode
		body.Message = appErr.Message
		body.Code = appErr.Code
	}
	return body
}
