package dto

import (
	"time"

	"github.com/harukisol/board-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          uint64                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	OwnerID     uint64                 `json:"owner_id"`
	Visibility  models.BoardVisibility `json:"visibility"`
	IsArchived  bool                   `json:"is_archived"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// BoardWithRoleDTO represents a board with the user's role
type BoardWithRoleDTO struct {
	BoardDTO
	Role models.BoardRole `json:"role"`
}

// BoardMemberDTO represents a member of a board
type BoardMemberDTO struct {
	User     UserDTO          `json:"user"`
	Role     models.BoardRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// BoardDetailDTO represents detailed board information
type BoardDetailDTO struct {
	BoardDTO
	Members  []BoardMemberDTO `json:"members"`
	YourRole models.BoardRole `json:"your_role"`
}

// InviteDTO represents a pending invite in API responses
type InviteDTO struct {
	ID         uint64           `json:"id"`
	BoardID    uint64           `json:"board_id"`
	BoardTitle string           `json:"board_title,omitempty"`
	Sender     *UserDTO         `json:"sender,omitempty"`
	Role       models.BoardRole `json:"role"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:          board.ID,
		Title:       board.Title,
		Description: board.Description,
		OwnerID:     board.OwnerID,
		Visibility:  board.Visibility,
		IsArchived:  board.IsArchived,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

// ToBoardWithRoleDTO converts a board membership to DTO with role
func ToBoardWithRoleDTO(member models.BoardMember) BoardWithRoleDTO {
	return BoardWithRoleDTO{
		BoardDTO: ToBoardDTO(member.Board),
		Role:     member.Role,
	}
}

// ToBoardMemberDTO converts a member to DTO
func ToBoardMemberDTO(member models.BoardMember) BoardMemberDTO {
	return BoardMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToBoardDetailDTO converts a board with members to detailed DTO
func ToBoardDetailDTO(board models.Board, members []models.BoardMember, yourRole models.BoardRole) BoardDetailDTO {
	memberDTOs := make([]BoardMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToBoardMemberDTO(member)
	}

	return BoardDetailDTO{
		BoardDTO: ToBoardDTO(board),
		Members:  memberDTOs,
		YourRole: yourRole,
	}
}

// ToInviteDTO converts an Invite model to InviteDTO
func ToInviteDTO(invite models.Invite) InviteDTO {
	dto := InviteDTO{
		ID:        invite.ID,
		BoardID:   invite.BoardID,
		Role:      invite.Role,
		CreatedAt: invite.CreatedAt,
	}

	if invite.Board.ID != 0 {
		dto.BoardTitle = invite.Board.Title
	}
	if invite.Sender.ID != 0 {
		sender := ToUserDTO(invite.Sender)
		dto.Sender = &sender
	}

	return dto
}
