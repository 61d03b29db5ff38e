package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// List ordering and import remapping
		{"lists", "idx_lists_board_id", "board_id"},
		{"lists", "idx_lists_board_position", "board_id, position"},
		{"lists", "idx_lists_external_id", "external_id"},

		// Task ordering and lookups
		{"tasks", "idx_tasks_list_id", "list_id"},
		{"tasks", "idx_tasks_list_position", "list_id, position"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_assigned_to_id", "assigned_to_id"},

		// Membership composite lookups
		{"board_members", "idx_board_members_board_id", "board_id"},
		{"board_members", "idx_board_members_user_id", "user_id"},

		// Pending-invite uniqueness checks
		{"invites", "idx_invites_board_recipient", "board_id, recipient_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
