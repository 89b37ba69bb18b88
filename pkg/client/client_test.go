package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTodosWrapsBodyInEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/todos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Buy milk","completed":false,"important":true,"category":"Home","dueDate":null,"createdAt":"2026-03-01T10:00:00","updatedAt":"2026-03-01T10:00:00"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListTodos(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Data[0].ID)
	assert.Equal(t, "Home", resp.Data[0].Category)
	assert.Nil(t, resp.Data[0].DueDate)
}

func TestHTTPErrorCarriesStatusAndBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"todo not found","code":"not_found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetTodo(context.Background(), "999")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "todo not found", apiErr.Message)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestHTTPErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListCategories(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestTransportFailureUsesStatusNone(t *testing.T) {
	// Closed server: the dial fails, so there is no HTTP response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := c.ListTodos(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, StatusNone, apiErr.Status)
}

func TestCreateTodoSendsCategoryByNameAndNullDueDate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"title":"Plan trip","category":"Travel","dueDate":null,"createdAt":"x","updatedAt":"x"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.CreateTodo(context.Background(), CreateTodoRequest{Title: "Plan trip", Category: "Travel"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Data.ID)

	assert.Equal(t, "Travel", body["category"])
	due, present := body["dueDate"]
	assert.True(t, present, "dueDate must be an explicit null, not omitted")
	assert.Nil(t, due)
	_, hasCategoryID := body["categoryId"]
	assert.False(t, hasCategoryID, "wire format has no categoryId field")
}

func TestUpdateTodoOmitsAbsentFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":3,"title":"t","completed":true,"createdAt":"x","updatedAt":"x"}`))
	}))
	defer srv.Close()

	done := true
	c := New(srv.URL)
	_, err := c.UpdateTodo(context.Background(), "3", UpdateTodoRequest{Completed: &done})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"completed": true}, body, "patch must contain only the provided field")
}
