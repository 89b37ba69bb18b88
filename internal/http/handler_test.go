package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasklight.app/tasklight/internal/cache"
	model "tasklight.app/tasklight/internal/models"
	repository "tasklight.app/tasklight/internal/repositories"
	"tasklight.app/tasklight/internal/services"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Todo{}, &model.Category{}))
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	listCache := cache.New(nil, time.Minute)
	todoSvc := services.NewTodoService(repository.NewTodoRepository(db), listCache)
	catSvc := services.NewCategoryService(repository.NewCategoryRepository(db), listCache)

	e := echo.New()
	Register(e, NewHandler(todoSvc, catSvc), 10000)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListTodos(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/todos",
		`{"title":"Buy milk","category":"Home","important":true,"dueDate":"2026-03-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Home", created.Category)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-03-10", *created.DueDate)

	rec = doJSON(e, http.MethodGet, "/api/v1/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var todos []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	assert.Len(t, todos, 1)
}

func TestCreateTodoWithoutTitleIsRejected(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/todos", `{"title":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "title is required", body["message"])
	assert.Equal(t, "title_required", body["code"])
}

func TestPatchTodoTogglesSingleField(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/todos", `{"title":"Task"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(e, http.MethodPatch, "/api/v1/todos/1", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var patched model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	assert.True(t, patched.Completed)
	assert.Equal(t, "Task", patched.Title, "patch must not clobber absent fields")
}

func TestGetMissingTodoReturns404Body(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/todos/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "todo not found", body["message"])
	assert.Equal(t, "todo_not_found", body["code"])
}

func TestDeleteTodoConfirms(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/v1/todos", `{"title":"Gone soon"}`)
	rec := doJSON(e, http.MethodDelete, "/api/v1/todos/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.DeletedID)

	rec = doJSON(e, http.MethodGet, "/api/v1/todos/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTodosWithQueryFilters(t *testing.T) {
	e := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/v1/todos", `{"title":"Work thing","category":"Work"}`)
	doJSON(e, http.MethodPost, "/api/v1/todos", `{"title":"Home thing","category":"Home"}`)

	rec := doJSON(e, http.MethodGet, "/api/v1/todos?category=Work", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var todos []model.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "Work thing", todos[0].Title)

	rec = doJSON(e, http.MethodGet, "/api/v1/todos?q=home", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "Home thing", todos[0].Title)

	rec = doJSON(e, http.MethodGet, "/api/v1/todos?completed=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/v1/categories", `{"name":"Work"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Work", created.Name)

	rec = doJSON(e, http.MethodPost, "/api/v1/categories", `{"name":"Work"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodPatch, "/api/v1/categories/1", `{"name":"Office"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []model.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Office", categories[0].Name)

	rec = doJSON(e, http.MethodDelete, "/api/v1/categories/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(e, http.MethodGet, "/api/v1/categories/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/v1/todos", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
