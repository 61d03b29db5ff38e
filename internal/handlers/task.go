package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/dto"
	apierrors "github.com/harukisol/board-management-api/internal/errors"
	"github.com/harukisol/board-management-api/internal/middleware"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/services"
	"github.com/harukisol/board-management-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task at the tail of a list on the current board
func (h *TaskHandler) CreateTask(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	listID, err := strconv.ParseUint(c.Param("list_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid list ID")
		return
	}

	userID, _ := middleware.GetUserID(c)

	type CreateTaskRequest struct {
		Title        string            `json:"title" binding:"required"`
		Description  string            `json:"description"`
		Status       models.TaskStatus `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
		DueDate      *time.Time        `json:"due_date"`
		AssignedToID *uint64           `json:"assigned_to_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		BoardID:      board.ID,
		ListID:       listID,
		CreatorID:    userID,
		AssignedToID: req.AssignedToID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DueDate:      req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the tasks of a list ordered by position
func (h *TaskHandler) ListTasks(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	listID, err := strconv.ParseUint(c.Param("list_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid list ID")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(board.ID, listID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns the task loaded by the access middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskInterface, _ := c.Get("task")
	task := taskInterface.(models.Task)

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask updates the task's fields
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskInterface, _ := c.Get("task")
	task := taskInterface.(models.Task)

	type UpdateTaskRequest struct {
		Title        *string            `json:"title"`
		Description  *string            `json:"description"`
		Status       *models.TaskStatus `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE ARCHIVED"`
		DueDate      *time.Time         `json:"due_date"`
		ClearDueDate bool               `json:"clear_due_date"`
		AssignedToID *uint64            `json:"assigned_to_id"`
		Unassign     bool               `json:"unassign"`
		IsArchived   *bool              `json:"is_archived"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		AssignedToID: req.AssignedToID,
		Unassign:     req.Unassign,
		IsArchived:   req.IsArchived,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// MoveTask moves the task within its list or into another list on the board
func (h *TaskHandler) MoveTask(c *gin.Context) {
	taskInterface, _ := c.Get("task")
	task := taskInterface.(models.Task)

	type MoveTaskRequest struct {
		Position int     `json:"position" binding:"min=0"`
		ListID   *uint64 `json:"list_id"`
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	moved, err := h.taskService.MoveTask(task.ID, req.Position, req.ListID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*moved))
}

// DeleteTask deletes the task and compacts the sibling positions
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskInterface, _ := c.Get("task")
	task := taskInterface.(models.Task)

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleReq),
		errors.Is(err, services.ErrDestListMissing):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
