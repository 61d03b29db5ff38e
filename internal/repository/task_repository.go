package repository

import (
	"github.com/harukisol/board-management-api/internal/database"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// CreateInBatch bulk-inserts tasks with caller-supplied positions
func (r *GormTaskRepository) CreateInBatch(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&tasks, len(tasks)).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByList lists a page of a list's tasks ordered by position
func (r *GormTaskRepository) ListByList(listID uint64, params utils.PaginationParams) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("list_id = ?", listID).
		Order("position ASC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByList counts tasks in a list
func (r *GormTaskRepository) CountByList(listID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("list_id = ?", listID).
		Count(&count).Error
	return count, err
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdatePosition moves a task within its list, shifting the siblings it passes
// over in the same transaction. Moving to the current position is a no-op.
func (r *GormTaskRepository) UpdatePosition(task *models.Task, newPosition int) error {
	oldPosition := task.Position
	if newPosition == oldPosition {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if newPosition < oldPosition {
			if err := tx.Model(&models.Task{}).
				Where("list_id = ? AND position >= ? AND position < ?", task.ListID, newPosition, oldPosition).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.Task{}).
				Where("list_id = ? AND position > ? AND position <= ?", task.ListID, oldPosition, newPosition).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("position", newPosition).Error
	})
	if err != nil {
		return err
	}

	task.Position = newPosition
	return nil
}

// MoveToList moves a task to another list at newPosition. The source gap is
// closed, the destination slot opened, and the task repointed in one
// transaction.
func (r *GormTaskRepository) MoveToList(task *models.Task, destListID uint64, newPosition int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("list_id = ? AND position > ?", task.ListID, task.Position).
			Update("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("list_id = ? AND position >= ?", destListID, newPosition).
			Update("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"list_id":  destListID,
				"position": newPosition,
			}).Error
	})
	if err != nil {
		return err
	}

	task.ListID = destListID
	task.Position = newPosition
	return nil
}

// Delete removes a task and closes the position gap transactionally
func (r *GormTaskRepository) Delete(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, task.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Task{}).
			Where("list_id = ? AND position > ?", task.ListID, task.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}
