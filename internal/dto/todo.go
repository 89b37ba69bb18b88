package dto

// CreateTodoRequest is the POST /todos body. Category travels by name;
// dueDate is null when the task is unscheduled.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Important   bool    `json:"important"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTodoRequest is the PATCH /todos/:id body; only present fields are
// applied.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Important   *bool   `json:"important"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListTodosQuery mirrors the optional /todos query filters.
type ListTodosQuery struct {
	Completed *bool
	Important *bool
	Category  *string
	DueDate   *string
	Search    string
}
