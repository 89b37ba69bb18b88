// Package taskops coordinates task mutations. Every side effect flows
// through the data layer's cache invalidation, never through patching of an
// already-rendered list, so each view recomputes from one consistent source.
package taskops

import (
	"context"
	"errors"
	"strings"

	"tasklight.app/tasklight/pkg/data"
	"tasklight.app/tasklight/pkg/domain"
)

var (
	// ErrEmptyTitle blocks submission before the backend is contacted.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrTaskNotFound means the toggle target is not in the current task set.
	ErrTaskNotFound = errors.New("task not found")
)

// DataLayer is the slice of the data access layer the orchestrator drives.
type DataLayer interface {
	Tasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft data.TaskDraft) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch data.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Orchestrator routes mutation flows through the data layer.
type Orchestrator struct {
	data DataLayer
}

// New returns an orchestrator over the given data layer.
func New(d DataLayer) *Orchestrator {
	return &Orchestrator{data: d}
}

// ToggleComplete flips the task's completed flag with a single-field update.
func (o *Orchestrator) ToggleComplete(ctx context.Context, taskID string) (domain.Task, error) {
	current, err := o.find(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	flipped := !current.Completed
	return o.data.UpdateTask(ctx, taskID, data.TaskPatch{Completed: &flipped})
}

// ToggleImportant flips the task's important flag with a single-field update.
func (o *Orchestrator) ToggleImportant(ctx context.Context, taskID string) (domain.Task, error) {
	current, err := o.find(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	flipped := !current.Important
	return o.data.UpdateTask(ctx, taskID, data.TaskPatch{Important: &flipped})
}

// DeleteTask removes the task; the cache invalidation makes it disappear
// from every view's next computation.
func (o *Orchestrator) DeleteTask(ctx context.Context, taskID string) error {
	return o.data.DeleteTask(ctx, taskID)
}

// CreateOrUpdateTask routes to update when existingID is given, else to
// create. A blank trimmed title fails here, before any request is made.
func (o *Orchestrator) CreateOrUpdateTask(ctx context.Context, draft data.TaskDraft, existingID string) (domain.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Task{}, ErrEmptyTitle
	}

	if existingID == "" {
		return o.data.CreateTask(ctx, draft)
	}

	patch := data.TaskPatch{
		Title:       &draft.Title,
		Description: &draft.Description,
		Important:   &draft.Important,
		CategoryID:  &draft.CategoryID,
	}
	if draft.DueDate != "" {
		patch.DueDate = &draft.DueDate
	}
	return o.data.UpdateTask(ctx, existingID, patch)
}

func (o *Orchestrator) find(ctx context.Context, taskID string) (domain.Task, error) {
	tasks, err := o.data.Tasks(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return domain.Task{}, ErrTaskNotFound
}
