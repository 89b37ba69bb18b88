package errors

import "net/http"

var ErrCategoryNotFound = &Exception{
	Message:    "category not found",
	Code:       "category_not_found",
	StatusCode: http.StatusNotFound,
}
