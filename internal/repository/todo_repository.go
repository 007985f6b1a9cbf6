package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create adds a new todo to the database
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// GetByID retrieves a todo by its ID
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

// GetByBoardID retrieves all todos on a board, newest first. A non-empty
// status restricts the result to that status; callers pass "" for no filter.
func (r *TodoRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID, status string) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	query := r.db.WithContext(ctx).Where("board_id = ?", boardID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&todos).Error
	return todos, err
}

// CountByStatus returns the total number of todos on a board and how many
// of them are completed.
func (r *TodoRepository) CountByStatus(ctx context.Context, boardID uuid.UUID) (total int64, completed int64, err error) {
	err = r.db.WithContext(ctx).Model(&model.Todo{}).Where("board_id = ?", boardID).Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("board_id = ? AND status = ?", boardID, model.StatusCompleted).
		Count(&completed).Error
	if err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

// Update updates an existing todo
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	result := r.db.WithContext(ctx).Save(todo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// Delete removes a todo by its ID
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// DeleteByBoardID bulk-deletes every todo on a board. Used by the board
// cascade delete; no per-todo hooks run.
func (r *TodoRepository) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.Todo{}).Error
}
