package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrListNotFound = errors.New("List not found")
	ErrListNotEmpty = errors.New("List still contains tasks")
	ErrListTitleReq = errors.New("List title cannot be empty")
)

// ListService maintains the board's columns and their dense 1-based ordering.
type ListService struct {
	listRepo repository.ListRepository
	notifier realtime.Notifier
}

// NewListService creates a new ListService.
func NewListService(listRepo repository.ListRepository, notifier realtime.Notifier) *ListService {
	return &ListService{
		listRepo: listRepo,
		notifier: notifier,
	}
}

// CreateListInput represents parameters to create a new list.
type CreateListInput struct {
	BoardID uint64
	Title   string
}

// CreateList appends a list to the board. The first list of a board takes
// position 1; later lists take max+1.
func (s *ListService) CreateList(input CreateListInput) (*models.List, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrListTitleReq
	}

	max, err := s.listRepo.MaxPosition(input.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve list position: %w", err)
	}

	list := &models.List{
		BoardID:  input.BoardID,
		Title:    input.Title,
		Position: max + 1,
	}

	if err := s.listRepo.Create(list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.notifier.EmitBoardChange(input.BoardID, constants.ActionListCreated, map[string]interface{}{
		"list_id":  list.ID,
		"title":    list.Title,
		"position": list.Position,
	})

	return list, nil
}

// ListLists returns the board's lists ordered by position.
func (s *ListService) ListLists(boardID uint64) ([]models.List, error) {
	lists, err := s.listRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

// UpdateListInput carries the mutable list fields.
type UpdateListInput struct {
	Title      *string
	IsArchived *bool
}

// UpdateList updates a list's title or archive flag.
func (s *ListService) UpdateList(boardID, listID uint64, input UpdateListInput) (*models.List, error) {
	list, err := s.findBoardList(boardID, listID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrListTitleReq
		}
		list.Title = *input.Title
	}
	if input.IsArchived != nil {
		list.IsArchived = *input.IsArchived
	}

	if err := s.listRepo.Update(list); err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	s.notifier.EmitBoardChange(boardID, constants.ActionListUpdated, map[string]interface{}{
		"list_id": list.ID,
	})

	return list, nil
}

// MoveList moves a list to newPosition, shifting the siblings it passes over.
// Moving to the current position changes nothing but still announces the move.
func (s *ListService) MoveList(boardID, listID uint64, newPosition int) (*models.List, error) {
	list, err := s.findBoardList(boardID, listID)
	if err != nil {
		return nil, err
	}

	if err := s.listRepo.UpdatePosition(list, newPosition); err != nil {
		return nil, fmt.Errorf("failed to move list: %w", err)
	}

	s.notifier.EmitBoardChange(boardID, constants.ActionListMoved, map[string]interface{}{
		"list_id":  list.ID,
		"position": list.Position,
	})

	return list, nil
}

// DeleteList removes an emptied list and closes the position gap. Lists that
// still hold non-archived tasks are rejected.
func (s *ListService) DeleteList(boardID, listID uint64) error {
	list, err := s.findBoardList(boardID, listID)
	if err != nil {
		return err
	}

	count, err := s.listRepo.CountActiveTasks(listID)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return ErrListNotEmpty
	}

	if err := s.listRepo.Delete(list); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.notifier.EmitBoardChange(boardID, constants.ActionListDeleted, map[string]interface{}{
		"list_id": list.ID,
	})

	return nil
}

func (s *ListService) findBoardList(boardID, listID uint64) (*models.List, error) {
	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	if list.BoardID != boardID {
		return nil, ErrListNotFound
	}
	return list, nil
}
