package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Message:    "title is required",
	Code:       "title_required",
	StatusCode: http.StatusBadRequest,
}
