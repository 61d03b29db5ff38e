package repository

import (
	"github.com/harukisol/board-management-api/internal/database"
	"github.com/harukisol/board-management-api/internal/models"
	"gorm.io/gorm"
)

// GormListRepository is a GORM implementation of ListRepository
type GormListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &GormListRepository{db: db}
}

// Create creates a new list
func (r *GormListRepository) Create(list *models.List) error {
	return r.db.Create(list).Error
}

// CreateInBatch bulk-inserts lists with caller-supplied positions
func (r *GormListRepository) CreateInBatch(lists []models.List) error {
	if len(lists) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&lists, len(lists)).Error
}

// FindByID finds a list by ID
func (r *GormListRepository) FindByID(id uint64) (*models.List, error) {
	var list models.List
	if err := r.db.First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByBoard lists all lists of a board ordered by position
func (r *GormListRepository) ListByBoard(boardID uint64) ([]models.List, error) {
	var lists []models.List
	if err := r.db.Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// MaxPosition returns the highest position among a board's lists, 0 when empty
func (r *GormListRepository) MaxPosition(boardID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.List{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// Update updates a list
func (r *GormListRepository) Update(list *models.List) error {
	return r.db.Save(list).Error
}

// UpdatePosition moves a list to newPosition, shifting the siblings it passes
// over in the same transaction. Moving to the current position is a no-op.
func (r *GormListRepository) UpdatePosition(list *models.List, newPosition int) error {
	oldPosition := list.Position
	if newPosition == oldPosition {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if newPosition < oldPosition {
			if err := tx.Model(&models.List{}).
				Where("board_id = ? AND position >= ? AND position < ?", list.BoardID, newPosition, oldPosition).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&models.List{}).
				Where("board_id = ? AND position > ? AND position <= ?", list.BoardID, oldPosition, newPosition).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.List{}).
			Where("id = ?", list.ID).
			Update("position", newPosition).Error
	})
	if err != nil {
		return err
	}

	list.Position = newPosition
	return nil
}

// Delete removes a list and closes the position gap transactionally
func (r *GormListRepository) Delete(list *models.List) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.List{}, list.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.List{}).
			Where("board_id = ? AND position > ?", list.BoardID, list.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

// CountActiveTasks counts the list's non-archived tasks
func (r *GormListRepository) CountActiveTasks(listID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Scopes(database.NotArchived).
		Where("list_id = ?", listID).
		Count(&count).Error
	return count, err
}
