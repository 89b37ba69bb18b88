// Package data owns the task/category cache and the translation between the
// backend wire shapes and the domain model. The backend references a task's
// category by name; this layer maintains the name<->id mapping, which is why
// the task fetch may never run ahead of the category fetch.
package data

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"tasklight.app/tasklight/pkg/client"
	"tasklight.app/tasklight/pkg/domain"
)

// Backend is the slice of the API client this layer consumes.
type Backend interface {
	ListTodos(ctx context.Context) (client.Response[[]client.TodoRecord], error)
	GetTodo(ctx context.Context, id string) (client.Response[client.TodoRecord], error)
	CreateTodo(ctx context.Context, req client.CreateTodoRequest) (client.Response[client.TodoRecord], error)
	UpdateTodo(ctx context.Context, id string, req client.UpdateTodoRequest) (client.Response[client.TodoRecord], error)
	DeleteTodo(ctx context.Context, id string) error
	ListCategories(ctx context.Context) (client.Response[[]client.CategoryRecord], error)
}

// FetchState drives the loading / error / ready renderings in the views.
// The three are mutually exclusive; an empty task list with StateReady is
// not an error.
type FetchState int

const (
	StateIdle FetchState = iota
	StateLoading
	StateError
	StateReady
)

const (
	defaultCategoryTTL = 5 * time.Minute
	defaultTaskTTL     = 2 * time.Minute

	defaultIcon  = "📁"
	defaultColor = "bg-primary"
)

// TaskDraft is the domain-shaped payload for creating a task. CategoryID is
// resolved back to the category's name before it goes on the wire.
type TaskDraft struct {
	Title       string
	Description string
	CategoryID  string
	Important   bool
	DueDate     string
}

// TaskPatch is a partial update; nil fields are untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Important   *bool
	CategoryID  *string
	DueDate     *string
}

// Access is the single owner of the shared task/category cache. Everything
// downstream (filter engine, mutation orchestrator) reads through it or asks
// it to invalidate; nothing else writes cache entries.
type Access struct {
	api Backend
	now func() time.Time

	categoryTTL time.Duration
	taskTTL     time.Duration

	mu sync.Mutex

	categories       []domain.Category
	categoriesAt     time.Time
	categoryRevision int
	categoryState    FetchState

	tasks         []domain.Task
	tasksAt       time.Time
	tasksRevision int
	taskState     FetchState

	taskByID map[string]domain.Task
}

// Option configures an Access.
type Option func(*Access)

// WithClock substitutes the freshness clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Access) { a.now = now }
}

// WithTTLs overrides the category and task freshness windows.
func WithTTLs(category, task time.Duration) Option {
	return func(a *Access) {
		a.categoryTTL = category
		a.taskTTL = task
	}
}

// New returns an Access over the given backend.
func New(api Backend, opts ...Option) *Access {
	a := &Access{
		api:         api,
		now:         time.Now,
		categoryTTL: defaultCategoryTTL,
		taskTTL:     defaultTaskTTL,
		taskByID:    make(map[string]domain.Task),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Categories returns the category list, fetching when the cached copy is
// older than the freshness window. Backend ids are stringified; icon and
// color get display defaults.
func (a *Access) Categories(ctx context.Context) ([]domain.Category, error) {
	a.mu.Lock()
	if a.categoriesFreshLocked() {
		cached := a.categories
		a.mu.Unlock()
		return cached, nil
	}
	a.categoryState = StateLoading
	a.mu.Unlock()

	resp, err := a.api.ListCategories(ctx)
	if err != nil {
		log.WithError(err).Error("failed to fetch categories")
		a.mu.Lock()
		a.categoryState = StateError
		a.mu.Unlock()
		return nil, err
	}

	fresh := make([]domain.Category, 0, len(resp.Data))
	for _, rec := range resp.Data {
		fresh = append(fresh, domain.Category{
			ID:        strconv.FormatInt(rec.ID, 10),
			Name:      rec.Name,
			Icon:      defaultIcon,
			Color:     defaultColor,
			CreatedAt: rec.CreatedAt,
		})
	}

	a.mu.Lock()
	if !categoriesEqual(a.categories, fresh) {
		a.categoryRevision++
	}
	a.categories = fresh
	a.categoriesAt = a.now()
	a.categoryState = StateReady
	a.mu.Unlock()
	return fresh, nil
}

// Tasks returns the task list. The category list is loaded first, always:
// the backend keys a task's category by name and the name->id resolution
// happens here at fetch time. Racing the two fetches would intermittently
// leave tasks uncategorized. The cached transform is also keyed by the
// category revision, so a category rename or addition forces a refetch.
func (a *Access) Tasks(ctx context.Context) ([]domain.Task, error) {
	categories, err := a.Categories(ctx)
	if err != nil {
		a.mu.Lock()
		a.taskState = StateError
		a.mu.Unlock()
		return nil, err
	}

	a.mu.Lock()
	if a.tasksFreshLocked() {
		cached := a.tasks
		a.mu.Unlock()
		return cached, nil
	}
	revision := a.categoryRevision
	a.taskState = StateLoading
	a.mu.Unlock()

	resp, err := a.api.ListTodos(ctx)
	if err != nil {
		log.WithError(err).Error("failed to fetch tasks")
		a.mu.Lock()
		a.taskState = StateError
		a.mu.Unlock()
		return nil, err
	}

	fresh := make([]domain.Task, 0, len(resp.Data))
	for _, rec := range resp.Data {
		fresh = append(fresh, transformTodo(rec, categories))
	}

	a.mu.Lock()
	a.tasks = fresh
	a.tasksAt = a.now()
	a.tasksRevision = revision
	a.taskState = StateReady
	a.mu.Unlock()
	return fresh, nil
}

// Task fetches a single task by id, preferring the single-task cache.
func (a *Access) Task(ctx context.Context, id string) (domain.Task, error) {
	a.mu.Lock()
	if cached, ok := a.taskByID[id]; ok {
		a.mu.Unlock()
		return cached, nil
	}
	categories := a.categories
	a.mu.Unlock()

	resp, err := a.api.GetTodo(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	task := transformTodo(resp.Data, categories)

	a.mu.Lock()
	a.taskByID[id] = task
	a.mu.Unlock()
	return task, nil
}

// CreateTask resolves the draft's CategoryID to the category's name (the
// backend's create contract takes category by name) and invalidates the task
// cache on success.
func (a *Access) CreateTask(ctx context.Context, draft TaskDraft) (domain.Task, error) {
	categories, err := a.Categories(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	req := client.CreateTodoRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    categoryNameByID(categories, draft.CategoryID),
		Important:   draft.Important,
	}
	if draft.DueDate != "" {
		due := draft.DueDate
		req.DueDate = &due
	}

	resp, err := a.api.CreateTodo(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}

	a.invalidateTaskList()
	return transformTodo(resp.Data, categories), nil
}

// UpdateTask applies a partial update. A present CategoryID is resolved to a
// name and never travels as categoryId; on success both the list cache and
// the single-task entry are invalidated.
func (a *Access) UpdateTask(ctx context.Context, id string, patch TaskPatch) (domain.Task, error) {
	a.mu.Lock()
	categories := a.categories
	a.mu.Unlock()

	req := client.UpdateTodoRequest{
		Title:       patch.Title,
		Description: patch.Description,
		Completed:   patch.Completed,
		Important:   patch.Important,
		DueDate:     patch.DueDate,
	}
	if patch.CategoryID != nil {
		name := categoryNameByID(categories, *patch.CategoryID)
		req.Category = &name
	}

	resp, err := a.api.UpdateTodo(ctx, id, req)
	if err != nil {
		return domain.Task{}, err
	}

	a.invalidateTaskList()
	a.mu.Lock()
	delete(a.taskByID, id)
	a.mu.Unlock()
	return transformTodo(resp.Data, categories), nil
}

// DeleteTask removes a task and drops every cache entry that could still
// show it.
func (a *Access) DeleteTask(ctx context.Context, id string) error {
	if err := a.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	a.invalidateTaskList()
	a.mu.Lock()
	delete(a.taskByID, id)
	a.mu.Unlock()
	return nil
}

// InvalidateTasks discards the cached task list so the next read refetches.
func (a *Access) InvalidateTasks() {
	a.invalidateTaskList()
}

// InvalidateCategories discards the cached category list. The task cache is
// keyed by category revision, so a subsequent category change invalidates
// the task transform as well.
func (a *Access) InvalidateCategories() {
	a.mu.Lock()
	a.categoriesAt = time.Time{}
	a.mu.Unlock()
}

// TaskState reports the task fetch status for view rendering.
func (a *Access) TaskState() FetchState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.taskState
}

// CategoryState reports the category fetch status.
func (a *Access) CategoryState() FetchState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.categoryState
}

func (a *Access) invalidateTaskList() {
	a.mu.Lock()
	a.tasksAt = time.Time{}
	a.mu.Unlock()
}

func (a *Access) categoriesFreshLocked() bool {
	return !a.categoriesAt.IsZero() && a.now().Sub(a.categoriesAt) < a.categoryTTL
}

func (a *Access) tasksFreshLocked() bool {
	return !a.tasksAt.IsZero() &&
		a.now().Sub(a.tasksAt) < a.taskTTL &&
		a.tasksRevision == a.categoryRevision
}

// transformTodo maps a wire record into the domain shape, resolving the
// category name to an id by case-insensitive, trimmed comparison. No match
// means uncategorized.
func transformTodo(rec client.TodoRecord, categories []domain.Category) domain.Task {
	categoryID := ""
	if name := strings.ToLower(strings.TrimSpace(rec.Category)); name != "" {
		for _, c := range categories {
			if strings.ToLower(c.Name) == name {
				categoryID = c.ID
				break
			}
		}
	}

	dueDate := ""
	if rec.DueDate != nil {
		dueDate = *rec.DueDate
	}

	return domain.Task{
		ID:          strconv.FormatInt(rec.ID, 10),
		Title:       rec.Title,
		Description: rec.Description,
		Completed:   rec.Completed,
		Important:   rec.Important,
		DueDate:     dueDate,
		CategoryID:  categoryID,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func categoryNameByID(categories []domain.Category, id string) string {
	if id == "" {
		return ""
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func categoriesEqual(a, b []domain.Category) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
