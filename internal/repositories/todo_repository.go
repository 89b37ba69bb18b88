package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	model "tasklight.app/tasklight/internal/models"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// TodoFilter narrows a listing; nil fields apply no constraint.
type TodoFilter struct {
	Completed *bool
	Important *bool
	Category  *string
	DueDate   *string
}

func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).First(&todo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *TodoRepository) List(ctx context.Context, filter TodoFilter) ([]model.Todo, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Important != nil {
		query = query.Where("important = ?", *filter.Important)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.DueDate != nil {
		query = query.Where("due_date = ?", *filter.DueDate)
	}

	var todos []model.Todo
	err := query.Find(&todos).Error
	return todos, err
}

// Search matches the term against title and description, case-insensitive.
func (r *TodoRepository) Search(ctx context.Context, term string) ([]model.Todo, error) {
	like := "%" + strings.ToLower(term) + "%"

	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("created_at desc").
		Find(&todos).Error
	return todos, err
}

func (r *TodoRepository) Save(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Todo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
