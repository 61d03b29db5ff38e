package database

import (
	"gorm.io/gorm"

	"github.com/harukisol/board-management-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NotArchived filters out archived rows.
func NotArchived(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", false)
}
