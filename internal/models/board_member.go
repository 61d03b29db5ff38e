package models

import "time"

type BoardRole string

const (
	RoleAdmin    BoardRole = "ADMIN"
	RoleMember   BoardRole = "MEMBER"
	RoleObserver BoardRole = "OBSERVER"
)

type BoardMember struct {
	BoardID  uint64    `gorm:"primarykey" json:"board_id"`
	UserID   uint64    `gorm:"primarykey" json:"user_id"`
	Role     BoardRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
