package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"tasklight.app/tasklight/internal/cache"
	"tasklight.app/tasklight/internal/dto"
	apperrors "tasklight.app/tasklight/internal/errors"
	model "tasklight.app/tasklight/internal/models"
	repository "tasklight.app/tasklight/internal/repositories"
)

type TodoService struct {
	repo      *repository.TodoRepository
	listCache *cache.ListCache
}

func NewTodoService(repo *repository.TodoRepository, listCache *cache.ListCache) *TodoService {
	return &TodoService{repo: repo, listCache: listCache}
}

// List returns todos, honoring the optional filters. A search term takes
// precedence over field filters. Only the unfiltered listing is served from
// the cache; filtered reads always hit the repository.
func (s *TodoService) List(ctx context.Context, query dto.ListTodosQuery) ([]model.Todo, error) {
	if term := strings.TrimSpace(query.Search); term != "" {
		return s.repo.Search(ctx, term)
	}

	filter := repository.TodoFilter{
		Completed: query.Completed,
		Important: query.Important,
		Category:  query.Category,
		DueDate:   query.DueDate,
	}
	unfiltered := filter == (repository.TodoFilter{})

	if unfiltered {
		var cached []model.Todo
		if s.listCache.Get(ctx, cache.KeyTodos, &cached) {
			return cached, nil
		}
	}

	todos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered {
		s.listCache.Set(ctx, cache.KeyTodos, todos)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, id uint) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, req dto.CreateTodoRequest) (*model.Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.ErrTitleRequired
	}

	todo := &model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Important:   req.Important,
		DueDate:     req.DueDate,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	log.WithField("id", todo.ID).Info("todo created")
	s.listCache.Invalidate(ctx, cache.KeyTodos)
	return todo, nil
}

// Patch applies the provided fields only, leaving the rest untouched.
func (s *TodoService) Patch(ctx context.Context, id uint, req dto.UpdateTodoRequest) (*model.Todo, error) {
	todo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.ErrTitleRequired
		}
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Important != nil {
		todo.Important = *req.Important
	}
	if req.Category != nil {
		todo.Category = *req.Category
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.KeyTodos)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrTodoNotFound
		}
		return err
	}

	log.WithField("id", id).Info("todo deleted")
	s.listCache.Invalidate(ctx, cache.KeyTodos)
	return nil
}
