package services

import (
	"errors"
	"fmt"

	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOnlyAdminsInvite   = errors.New("Only administrators can invite users")
	ErrInviteeNotFound    = errors.New("User not found")
	ErrDuplicateInvite    = errors.New("User already has a pending invite for this board")
	ErrAlreadyBoardMember = errors.New("User is already a member of this board")
	ErrInviteNotFound     = errors.New("Invite not found")
	ErrNotInviteRecipient = errors.New("Only the invited user can respond to this invite")
)

// InviteService manages the pending-invite lifecycle.
type InviteService struct {
	inviteRepo repository.InviteRepository
	boardRepo  repository.BoardRepository
	userRepo   repository.UserRepository
	notifier   realtime.Notifier
}

// NewInviteService creates a new InviteService.
func NewInviteService(inviteRepo repository.InviteRepository, boardRepo repository.BoardRepository, userRepo repository.UserRepository, notifier realtime.Notifier) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		boardRepo:  boardRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// InviteInput represents parameters for inviting a user to a board.
type InviteInput struct {
	BoardID  uint64
	SenderID uint64
	Username string
	Role     models.BoardRole
}

// Invite creates a pending invite for the named user. At most one pending
// invite may exist per (board, recipient) pair.
func (s *InviteService) Invite(input InviteInput) (*models.Invite, error) {
	sender, err := s.boardRepo.FindMember(input.BoardID, input.SenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOnlyAdminsInvite
		}
		return nil, fmt.Errorf("failed to find sender: %w", err)
	}
	if sender.Role != models.RoleAdmin {
		return nil, ErrOnlyAdminsInvite
	}

	recipient, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if _, err := s.inviteRepo.FindPending(input.BoardID, recipient.ID); err == nil {
		return nil, ErrDuplicateInvite
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invite: %w", err)
	}

	if _, err := s.boardRepo.FindMember(input.BoardID, recipient.ID); err == nil {
		return nil, ErrAlreadyBoardMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	invite := &models.Invite{
		BoardID:     input.BoardID,
		SenderID:    input.SenderID,
		RecipientID: recipient.ID,
		Email:       recipient.Email,
		Role:        role,
		Status:      models.InviteStatusPending,
	}

	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	// Best-effort alert on the recipient's side channel.
	s.notifier.NotifyUser(recipient.ID)

	return invite, nil
}

// ListForUser returns the user's pending invites.
func (s *InviteService) ListForUser(userID uint64) ([]models.Invite, error) {
	invites, err := s.inviteRepo.ListByRecipient(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// Respond accepts or declines an invite on behalf of responderID. Accepting
// creates the membership with the invite's stored role and deletes the invite
// atomically; declining just deletes it.
func (s *InviteService) Respond(inviteID, responderID uint64, accept bool) (*models.BoardMember, error) {
	invite, err := s.inviteRepo.FindByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}

	if invite.RecipientID != responderID {
		return nil, ErrNotInviteRecipient
	}

	if !accept {
		if err := s.inviteRepo.Delete(invite.ID); err != nil {
			return nil, fmt.Errorf("failed to decline invite: %w", err)
		}
		return nil, nil
	}

	member, err := s.inviteRepo.Accept(invite)
	if err != nil {
		return nil, fmt.Errorf("failed to accept invite: %w", err)
	}

	return member, nil
}
