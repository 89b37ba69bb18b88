package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tasklight.app/tasklight/internal/dto"
	apperrors "tasklight.app/tasklight/internal/errors"
	"tasklight.app/tasklight/internal/http/validators"
	"tasklight.app/tasklight/internal/services"
)

type Handler struct {
	todos      *services.TodoService
	categories *services.CategoryService
}

func NewHandler(todos *services.TodoService, categories *services.CategoryService) *Handler {
	return &Handler{
		todos:      todos,
		categories: categories,
	}
}

// DeleteResponse confirms a successful delete.
type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID uint   `json:"deletedId"`
}

func (h *Handler) ListTodos(c echo.Context) error {
	query := dto.ListTodosQuery{Search: c.QueryParam("q")}
	var err error
	if query.Completed, err = optionalBool(c, "completed"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "completed must be true or false")
	}
	if query.Important, err = optionalBool(c, "important"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "important must be true or false")
	}
	if v := c.QueryParam("category"); v != "" {
		query.Category = &v
	}
	if v := c.QueryParam("dueDate"); v != "" {
		query.DueDate = &v
	}

	todos, err := h.todos.List(c.Request().Context(), query)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, todos)
}

func (h *Handler) GetTodo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	todo, err := h.todos.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) CreateTodo(c echo.Context) error {
	var req dto.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTodo(&req); err != nil {
		return errorJSON(c, err)
	}

	todo, err := h.todos.Create(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, todo)
}

func (h *Handler) PatchTodo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	todo, err := h.todos.Patch(c.Request().Context(), id, req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.todos.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "Todo successfully deleted", DeletedID: id})
}

func (h *Handler) ListCategories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.categories.Get(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	category, err := h.categories.Create(c.Request().Context(), req.Name)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *Handler) PatchCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	category, err := h.categories.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: "Category successfully deleted", DeletedID: id})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

func optionalBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func errorJSON(c echo.Context, err error) error {
	body := apperrors.Body(err)
	return c.JSON(body.Status, body)
}
