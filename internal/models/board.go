package models

import (
	"time"

	"gorm.io/gorm"
)

type BoardVisibility string

const (
	VisibilityPublic  BoardVisibility = "PUBLIC"
	VisibilityPrivate BoardVisibility = "PRIVATE"
	VisibilityTeam    BoardVisibility = "TEAM"
)

type Board struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	OwnerID     uint64          `gorm:"not null;index" json:"owner_id"`
	Visibility  BoardVisibility `gorm:"type:varchar(20);not null;default:'PRIVATE'" json:"visibility"`
	IsArchived  bool            `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Owner   User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Lists   []List        `gorm:"foreignKey:BoardID" json:"lists,omitempty"`
}
