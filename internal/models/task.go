package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusArchived   TaskStatus = "ARCHIVED"
)

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ExternalID   *string        `gorm:"type:varchar(64)" json:"external_id,omitempty"`
	ListID       uint64         `gorm:"not null;index" json:"list_id"`
	CreatorID    uint64         `gorm:"not null" json:"creator_id"`
	AssignedToID *uint64        `json:"assigned_to_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Position     int            `gorm:"not null" json:"position"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	IsArchived   bool           `gorm:"not null;default:false" json:"is_archived"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	List       List  `gorm:"foreignKey:ListID" json:"list,omitempty"`
	Creator    User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
}
