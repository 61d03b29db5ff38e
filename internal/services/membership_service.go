package services

import (
	"errors"
	"fmt"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCannotRemoveOwner      = errors.New("Cannot remove the board owner")
	ErrOnlyAdminsRemoveOthers = errors.New("Only administrators can remove other members")
	ErrMemberNotFound         = errors.New("User is not a member of this board")
	ErrCannotChangeOwnerRole  = errors.New("Cannot change the board owner role")
	ErrLastAdminDemotion      = errors.New("Cannot demote the only ADMIN of the board")
)

// removalOutcome is the terminal branch of the remove-member decision tree.
// Each outcome names its atomic side effects so they can be tested in
// isolation.
type removalOutcome int

const (
	// outcomeRemoveMember deletes a non-owner membership.
	outcomeRemoveMember removalOutcome = iota
	// outcomeTransferToAdmin moves ownership to an existing ADMIN.
	outcomeTransferToAdmin
	// outcomePromoteAndTransfer promotes the oldest MEMBER to ADMIN and moves
	// ownership to them.
	outcomePromoteAndTransfer
	// outcomeDeleteBoard removes the whole board: the departing owner was the
	// last eligible member.
	outcomeDeleteBoard
)

type removalDecision struct {
	outcome   removalOutcome
	successor *models.BoardMember
}

// MembershipService enforces who may act on a board and runs the
// ownership-succession algorithm when the owner leaves.
type MembershipService struct {
	boardRepo repository.BoardRepository
	notifier  realtime.Notifier
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(boardRepo repository.BoardRepository, notifier realtime.Notifier) *MembershipService {
	return &MembershipService{
		boardRepo: boardRepo,
		notifier:  notifier,
	}
}

// RemoveMember removes targetUserID from the board on behalf of requesterID.
// When the owner removes themself, ownership passes to the oldest-joined
// ADMIN, else the oldest-joined MEMBER (promoted), else the board is deleted.
func (s *MembershipService) RemoveMember(boardID, targetUserID, requesterID uint64) error {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	decision, err := s.decideRemoval(board, targetUserID, requesterID)
	if err != nil {
		return err
	}

	switch decision.outcome {
	case outcomeRemoveMember:
		if err := s.boardRepo.RemoveMember(boardID, targetUserID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

	case outcomeTransferToAdmin:
		if err := s.boardRepo.TransferOwnership(boardID, targetUserID, decision.successor.UserID, false); err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

	case outcomePromoteAndTransfer:
		if err := s.boardRepo.TransferOwnership(boardID, targetUserID, decision.successor.UserID, true); err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

	case outcomeDeleteBoard:
		if err := s.boardRepo.Delete(boardID); err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		s.notifier.EmitBoardChange(boardID, constants.ActionBoardDeleted, map[string]interface{}{
			"acting_user_id": requesterID,
		})
		return nil
	}

	context := map[string]interface{}{
		"removed_user_id": targetUserID,
		"acting_user_id":  requesterID,
	}
	if decision.successor != nil {
		context["new_owner_id"] = decision.successor.UserID
	}
	s.notifier.EmitBoardChange(boardID, constants.ActionMemberRemoved, context)

	return nil
}

// decideRemoval walks the decision tree without mutating anything.
func (s *MembershipService) decideRemoval(board *models.Board, targetUserID, requesterID uint64) (removalDecision, error) {
	if targetUserID == board.OwnerID {
		// Only the owner removes themself through this path; ownership role
		// changes never happen through direct edits by others.
		if requesterID != targetUserID {
			return removalDecision{}, ErrCannotRemoveOwner
		}

		admin, err := s.boardRepo.FindOldestMemberWithRole(board.ID, models.RoleAdmin, targetUserID)
		if err == nil {
			return removalDecision{outcome: outcomeTransferToAdmin, successor: admin}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return removalDecision{}, fmt.Errorf("failed to find admin successor: %w", err)
		}

		// OBSERVERs are not eligible for ownership.
		member, err := s.boardRepo.FindOldestMemberWithRole(board.ID, models.RoleMember, targetUserID)
		if err == nil {
			return removalDecision{outcome: outcomePromoteAndTransfer, successor: member}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return removalDecision{}, fmt.Errorf("failed to find member successor: %w", err)
		}

		return removalDecision{outcome: outcomeDeleteBoard}, nil
	}

	if _, err := s.boardRepo.FindMember(board.ID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return removalDecision{}, ErrMemberNotFound
		}
		return removalDecision{}, fmt.Errorf("failed to find member: %w", err)
	}

	if requesterID != targetUserID {
		requester, err := s.boardRepo.FindMember(board.ID, requesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return removalDecision{}, ErrOnlyAdminsRemoveOthers
			}
			return removalDecision{}, fmt.Errorf("failed to find requester: %w", err)
		}
		if requester.Role != models.RoleAdmin {
			return removalDecision{}, ErrOnlyAdminsRemoveOthers
		}
	}

	return removalDecision{outcome: outcomeRemoveMember}, nil
}

// ChangeRole updates a member's role. The owner's role is immutable and the
// last ADMIN can never be demoted.
func (s *MembershipService) ChangeRole(boardID, targetUserID, requesterID uint64, newRole models.BoardRole) (*models.BoardMember, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if targetUserID == board.OwnerID {
		return nil, ErrCannotChangeOwnerRole
	}

	member, err := s.boardRepo.FindMember(boardID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	oldRole := member.Role
	if oldRole == models.RoleAdmin && newRole != models.RoleAdmin {
		count, err := s.boardRepo.CountAdmins(boardID)
		if err != nil {
			return nil, fmt.Errorf("failed to count admins: %w", err)
		}
		if count <= 1 {
			return nil, ErrLastAdminDemotion
		}
	}

	if err := s.boardRepo.UpdateMemberRole(boardID, targetUserID, newRole); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	member.Role = newRole

	s.notifier.EmitBoardChange(boardID, constants.ActionMemberRoleChanged, map[string]interface{}{
		"user_id":        targetUserID,
		"acting_user_id": requesterID,
		"old_role":       oldRole,
		"new_role":       newRole,
	})

	return member, nil
}
