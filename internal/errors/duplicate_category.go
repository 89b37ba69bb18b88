package errors

import "net/http"

var ErrDuplicateCategory = &Exception{
	Message:    "a category with this name already exists",
	Code:       "duplicate_category",
	StatusCode: http.StatusConflict,
}
