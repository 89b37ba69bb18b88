package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"tasklight.app/tasklight/internal/cache"
	apperrors "tasklight.app/tasklight/internal/errors"
	model "tasklight.app/tasklight/internal/models"
	repository "tasklight.app/tasklight/internal/repositories"
)

type CategoryService struct {
	repo      *repository.CategoryRepository
	listCache *cache.ListCache
}

func NewCategoryService(repo *repository.CategoryRepository, listCache *cache.ListCache) *CategoryService {
	return &CategoryService{repo: repo, listCache: listCache}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.listCache.Get(ctx, cache.KeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.listCache.Set(ctx, cache.KeyCategories, categories)
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &model.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	log.WithField("name", name).Info("category created")
	s.invalidate(ctx)
	return category, nil
}

// Rename changes a category's name. Existing todos keep the old name string
// and dangle until retagged; that matches the name-keyed reference model.
func (s *CategoryService) Rename(ctx context.Context, id uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrTitleRequired
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing != nil && existing.ID != id {
		return nil, apperrors.ErrDuplicateCategory
	}

	category.Name = name
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return category, nil
}

// Delete removes the category only. Todos referencing it are left in place;
// the client renders them as uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrCategoryNotFound
		}
		return err
	}

	log.WithField("id", id).Info("category deleted")
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	// Todo list entries embed category names, so both lists go.
	s.listCache.Invalidate(ctx, cache.KeyCategories, cache.KeyTodos)
}