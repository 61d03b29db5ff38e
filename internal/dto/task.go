package dto

import (
	"time"

	"github.com/harukisol/board-management-api/internal/models"
)

// ListDTO represents a list in API responses
type ListDTO struct {
	ID         uint64    `json:"id"`
	BoardID    uint64    `json:"board_id"`
	Title      string    `json:"title"`
	Position   int       `json:"position"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Tasks      []TaskDTO `json:"tasks,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	ListID       uint64            `json:"list_id"`
	CreatorID    uint64            `json:"creator_id"`
	AssignedToID *uint64           `json:"assigned_to_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Position     int               `json:"position"`
	Status       models.TaskStatus `json:"status"`
	DueDate      *time.Time        `json:"due_date"`
	IsArchived   bool              `json:"is_archived"`
	CompletedAt  *time.Time        `json:"completed_at"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Creator      *UserDTO          `json:"creator,omitempty"`
	AssignedTo   *UserDTO          `json:"assigned_to,omitempty"`
}

// ToListDTO converts a List model to ListDTO
func ToListDTO(list models.List) ListDTO {
	dto := ListDTO{
		ID:         list.ID,
		BoardID:    list.BoardID,
		Title:      list.Title,
		Position:   list.Position,
		IsArchived: list.IsArchived,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}

	if len(list.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(list.Tasks))
		for i, task := range list.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		ListID:       task.ListID,
		CreatorID:    task.CreatorID,
		AssignedToID: task.AssignedToID,
		Title:        task.Title,
		Description:  task.Description,
		Position:     task.Position,
		Status:       task.Status,
		DueDate:      task.DueDate,
		IsArchived:   task.IsArchived,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		assignee := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToListDTOs converts a slice of lists
func ToListDTOs(lists []models.List) []ListDTO {
	dtos := make([]ListDTO, len(lists))
	for i, list := range lists {
		dtos[i] = ToListDTO(list)
	}
	return dtos
}
