package validators

import (
	"strings"

	"tasklight.app/tasklight/internal/dto"
	apperrors "tasklight.app/tasklight/internal/errors"
)

// ValidateCreateTodo rejects todos without a usable title. Description and
// category are optional; the backend accepts any category name, known or not.
func ValidateCreateTodo(r *dto.CreateTodoRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	return nil
}
