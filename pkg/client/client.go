// Package client talks to the todo REST API. Every 2xx body is wrapped in a
// Response envelope; every failure surfaces as an *APIError, with Status 0
// standing in for "no HTTP response at all".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusNone is the APIError status for transport failures where no HTTP
// response was obtained.
const StatusNone = 0

// APIError carries the HTTP status and the backend's optional code/message
// for any failed request.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Status == StatusNone {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Response wraps a decoded API payload.
type Response[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TodoRecord is the backend wire shape of a task. The category is a name
// string; ids are numeric. The data layer translates both.
type TodoRecord struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	Important   bool    `json:"important"`
	Category    string  `json:"category,omitempty"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CategoryRecord is the backend wire shape of a category.
type CategoryRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// CreateTodoRequest is the create contract: category travels by name and an
// absent due date is an explicit null.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Important   bool    `json:"important"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTodoRequest is a partial patch; nil fields are left untouched
// server-side. There is no categoryId field on the wire.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Important   *bool   `json:"important,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Client is a thin JSON client over the backend base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// New returns a client for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (Response[T], error) {
	var resp Response[T]

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return resp, &APIError{Status: StatusNone, Message: err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return resp, &APIError{Status: StatusNone, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return resp, &APIError{Status: StatusNone, Message: err.Error()}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return resp, &APIError{Status: StatusNone, Message: err.Error()}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		apiErr := &APIError{Status: httpResp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(raw, &errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Code = errBody.Code
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(httpResp.StatusCode)
		}
		return resp, apiErr
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp.Data); err != nil {
			return resp, &APIError{Status: StatusNone, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	resp.Success = true
	return resp, nil
}

func (c *Client) ListTodos(ctx context.Context) (Response[[]TodoRecord], error) {
	return do[[]TodoRecord](ctx, c, http.MethodGet, "/todos", nil)
}

func (c *Client) GetTodo(ctx context.Context, id string) (Response[TodoRecord], error) {
	return do[TodoRecord](ctx, c, http.MethodGet, "/todos/"+id, nil)
}

func (c *Client) CreateTodo(ctx context.Context, req CreateTodoRequest) (Response[TodoRecord], error) {
	return do[TodoRecord](ctx, c, http.MethodPost, "/todos", req)
}

func (c *Client) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (Response[TodoRecord], error) {
	return do[TodoRecord](ctx, c, http.MethodPatch, "/todos/"+id, req)
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodDelete, "/todos/"+id, nil)
	return err
}

func (c *Client) ListCategories(ctx context.Context) (Response[[]CategoryRecord], error) {
	return do[[]CategoryRecord](ctx, c, http.MethodGet, "/categories", nil)
}

func (c *Client) GetCategory(ctx context.Context, id string) (Response[CategoryRecord], error) {
	return do[CategoryRecord](ctx, c, http.MethodGet, "/categories/"+id, nil)
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (Response[CategoryRecord], error) {
	return do[CategoryRecord](ctx, c, http.MethodPost, "/categories", req)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (Response[CategoryRecord], error) {
	return do[CategoryRecord](ctx, c, http.MethodPatch, "/categories/"+id, req)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodDelete, "/categories/"+id, nil)
	return err
}
