package errors

import "net/http"

var ErrTodoNotFound = &Exception{
	Message:    "todo not found",
	Code:       "todo_not_found",
	StatusCode: http.StatusNotFound,
}
