package models

import (
	"time"

	"gorm.io/gorm"
)

type List struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	ExternalID *string        `gorm:"type:varchar(64)" json:"external_id,omitempty"`
	BoardID    uint64         `gorm:"not null;index" json:"board_id"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	Position   int            `gorm:"not null" json:"position"`
	IsArchived bool           `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:ListID" json:"tasks,omitempty"`
}
