package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound     = errors.New("Board not found")
	ErrInvalidBoardTitle = errors.New("Board title cannot be empty")
)

// BoardService provides business logic for board operations.
type BoardService struct {
	boardRepo repository.BoardRepository
	notifier  realtime.Notifier
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, notifier realtime.Notifier) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		notifier:  notifier,
	}
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	Title       string
	Description string
	Visibility  models.BoardVisibility
	OwnerID     uint64
}

// CreateBoard creates a board and writes the owner's ADMIN membership with it.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidBoardTitle
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	board := &models.Board{
		Title:       input.Title,
		Description: input.Description,
		Visibility:  visibility,
		OwnerID:     input.OwnerID,
	}

	owner := &models.BoardMember{
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.boardRepo.Create(board, owner); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// ListBoardsForUser returns the non-archived boards the user belongs to.
func (s *BoardService) ListBoardsForUser(userID uint64) ([]models.BoardMember, error) {
	memberships, err := s.boardRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	visible := make([]models.BoardMember, 0, len(memberships))
	for _, m := range memberships {
		if m.Board.IsArchived {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// GetBoardWithMembers returns a board and all of its members.
func (s *BoardService) GetBoardWithMembers(boardID uint64) (*models.Board, []models.BoardMember, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find board: %w", err)
	}

	members, err := s.boardRepo.ListMembers(boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list board members: %w", err)
	}

	return board, members, nil
}

// UpdateBoardInput carries the mutable board fields.
type UpdateBoardInput struct {
	Title       *string
	Description *string
	Visibility  *models.BoardVisibility
	IsArchived  *bool
}

// UpdateBoard updates a board's title, description, visibility or archive flag.
func (s *BoardService) UpdateBoard(boardID uint64, input UpdateBoardInput) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidBoardTitle
		}
		board.Title = *input.Title
	}
	if input.Description != nil {
		board.Description = *input.Description
	}
	if input.Visibility != nil {
		board.Visibility = *input.Visibility
	}
	if input.IsArchived != nil {
		board.IsArchived = *input.IsArchived
	}

	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	s.notifier.EmitBoardChange(board.ID, constants.ActionBoardUpdated, map[string]interface{}{
		"title": board.Title,
	})

	return board, nil
}

// DeleteBoard removes a board with all of its lists, tasks, members and invites.
func (s *BoardService) DeleteBoard(boardID uint64) error {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.notifier.EmitBoardChange(boardID, constants.ActionBoardDeleted, nil)

	return nil
}
