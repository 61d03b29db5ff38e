package models

import "time"

type InviteStatus string

const (
	InviteStatusPending InviteStatus = "PENDING"
)

type Invite struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	BoardID     uint64       `gorm:"not null;index" json:"board_id"`
	SenderID    uint64       `gorm:"not null" json:"sender_id"`
	RecipientID uint64       `gorm:"not null;index" json:"recipient_id"`
	Email       string       `gorm:"type:varchar(255)" json:"email"`
	Role        BoardRole    `gorm:"type:varchar(20);not null" json:"role"`
	Status      InviteStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`

	// Relations
	Board     Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Sender    User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User  `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
