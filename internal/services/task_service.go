package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/harukisol/board-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("Task not found")
	ErrTaskTitleReq    = errors.New("Task title is required")
	ErrDestListMissing = errors.New("Destination list not found")
)

// TaskService maintains tasks and their dense 0-based ordering within a list.
type TaskService struct {
	taskRepo repository.TaskRepository
	listRepo repository.ListRepository
	notifier realtime.Notifier
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, listRepo repository.ListRepository, notifier realtime.Notifier) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		listRepo: listRepo,
		notifier: notifier,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	BoardID      uint64
	ListID       uint64
	CreatorID    uint64
	AssignedToID *uint64
	Title        string
	Description  string
	Status       models.TaskStatus
	DueDate      *time.Time
}

// CreateTask appends a task to the list. Task positions are 0-based: the new
// task takes the pre-insert sibling count as its position.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleReq
	}

	list, err := s.listRepo.FindByID(input.ListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	if list.BoardID != input.BoardID {
		return nil, ErrListNotFound
	}

	count, err := s.taskRepo.CountByList(input.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		ListID:       input.ListID,
		CreatorID:    input.CreatorID,
		AssignedToID: input.AssignedToID,
		Title:        input.Title,
		Description:  input.Description,
		Position:     int(count),
		Status:       status,
		DueDate:      input.DueDate,
	}
	if status == models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifier.EmitBoardChange(list.BoardID, constants.ActionTaskCreated, map[string]interface{}{
		"task_id":  task.ID,
		"list_id":  task.ListID,
		"position": task.Position,
	})

	return task, nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "AssignedTo", "List")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns a page of the list's tasks ordered by position, plus the
// total count.
func (s *TaskService) ListTasks(boardID, listID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrListNotFound
		}
		return nil, 0, fmt.Errorf("failed to find list: %w", err)
	}
	if list.BoardID != boardID {
		return nil, 0, ErrListNotFound
	}

	total, err := s.taskRepo.CountByList(listID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	tasks, err := s.taskRepo.ListByList(listID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	DueDate      *time.Time
	ClearDueDate bool
	AssignedToID *uint64
	Unassign     bool
	IsArchived   *bool
}

// UpdateTask updates an existing task. Transitions into DONE stamp
// CompletedAt; transitions out of DONE clear it.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleReq
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil && *input.Status != task.Status {
		if *input.Status == models.TaskStatusDone {
			now := time.Now()
			task.CompletedAt = &now
		} else if task.Status == models.TaskStatusDone {
			task.CompletedAt = nil
		}
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Unassign {
		task.AssignedToID = nil
	} else if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}
	if input.IsArchived != nil {
		task.IsArchived = *input.IsArchived
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if list, lerr := s.listRepo.FindByID(task.ListID); lerr == nil {
		s.notifier.EmitBoardChange(list.BoardID, constants.ActionTaskUpdated, map[string]interface{}{
			"task_id": task.ID,
		})
	}

	return task, nil
}

// MoveTask moves a task to newPosition, optionally into another list on the
// same board. Within one list the passed-over siblings shift; across lists
// the source gap closes and the destination slot opens, atomically.
func (s *TaskService) MoveTask(taskID uint64, newPosition int, destListID *uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	srcList, err := s.listRepo.FindByID(task.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to find list: %w", err)
	}

	if destListID == nil || *destListID == task.ListID {
		if err := s.taskRepo.UpdatePosition(task, newPosition); err != nil {
			return nil, fmt.Errorf("failed to move task: %w", err)
		}
	} else {
		dest, err := s.listRepo.FindByID(*destListID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDestListMissing
			}
			return nil, fmt.Errorf("failed to find destination list: %w", err)
		}
		if dest.BoardID != srcList.BoardID {
			return nil, ErrDestListMissing
		}

		if err := s.taskRepo.MoveToList(task, dest.ID, newPosition); err != nil {
			return nil, fmt.Errorf("failed to move task: %w", err)
		}
	}

	s.notifier.EmitBoardChange(srcList.BoardID, constants.ActionTaskMoved, map[string]interface{}{
		"task_id":  task.ID,
		"list_id":  task.ListID,
		"position": task.Position,
	})

	return task, nil
}

// DeleteTask deletes a task and closes the position gap behind it.
func (s *TaskService) DeleteTask(taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if list, lerr := s.listRepo.FindByID(task.ListID); lerr == nil {
		s.notifier.EmitBoardChange(list.BoardID, constants.ActionTaskDeleted, map[string]interface{}{
			"task_id": task.ID,
		})
	}

	return nil
}
