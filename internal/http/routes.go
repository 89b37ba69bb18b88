package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "tasklight.app/tasklight/internal/http/middlewares"
)

// Register wires the API routes under /api/v1.
func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RequestLogger())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	v1 := e.Group("/api/v1")

	v1.GET("/todos", h.ListTodos)
	v1.POST("/todos", h.CreateTodo)
	v1.GET("/todos/:id", h.GetTodo)
	v1.PATCH("/todos/:id", h.PatchTodo)
	v1.DELETE("/todos/:id", h.DeleteTodo)

	v1.GET("/categories", h.ListCategories)
	v1.POST("/categories", h.CreateCategory)
	v1.GET("/categories/:id", h.GetCategory)
	v1.PATCH("/categories/:id", h.PatchCategory)
	v1.DELETE("/categories/:id", h.DeleteCategory)
}
