package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/dto"
	apierrors "github.com/harukisol/board-management-api/internal/errors"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/services"
)

// ListHandler coordinates list HTTP handlers.
type ListHandler struct {
	listService *services.ListService
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
	}
}

// CreateList appends a new list to the current board
func (h *ListHandler) CreateList(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	type CreateListRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.CreateList(services.CreateListInput{
		BoardID: board.ID,
		Title:   req.Title,
	})
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToListDTO(*list))
}

// ListLists returns the board's lists ordered by position
func (h *ListHandler) ListLists(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	lists, err := h.listService.ListLists(board.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch lists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lists": dto.ToListDTOs(lists),
	})
}

// UpdateList updates a list's title or archive flag
func (h *ListHandler) UpdateList(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	listID, err := strconv.ParseUint(c.Param("list_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid list ID")
		return
	}

	type UpdateListRequest struct {
		Title      *string `json:"title"`
		IsArchived *bool   `json:"is_archived"`
	}

	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.UpdateList(board.ID, listID, services.UpdateListInput{
		Title:      req.Title,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDTO(*list))
}

// MoveList moves a list to a new position on the board
func (h *ListHandler) MoveList(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	listID, err := strconv.ParseUint(c.Param("list_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid list ID")
		return
	}

	type MoveListRequest struct {
		Position int `json:"position" binding:"required,min=1"`
	}

	var req MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.MoveList(board.ID, listID, req.Position)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDTO(*list))
}

// DeleteList deletes an empty list from the board
func (h *ListHandler) DeleteList(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	listID, err := strconv.ParseUint(c.Param("list_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid list ID")
		return
	}

	if err := h.listService.DeleteList(board.ID, listID); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "List deleted successfully",
	})
}

func respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrListNotEmpty),
		errors.Is(err, services.ErrListTitleReq):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
