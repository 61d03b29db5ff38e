package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/dto"
	apierrors "github.com/harukisol/board-management-api/internal/errors"
	"github.com/harukisol/board-management-api/internal/middleware"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/services"
)

// BoardHandler coordinates board and membership HTTP handlers.
type BoardHandler struct {
	boardService      *services.BoardService
	membershipService *services.MembershipService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService, membershipService *services.MembershipService) *BoardHandler {
	return &BoardHandler{
		boardService:      boardService,
		membershipService: membershipService,
	}
}

// CreateBoard creates a new board owned by the caller
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBoardRequest struct {
		Title       string                 `json:"title" binding:"required"`
		Description string                 `json:"description"`
		Visibility  models.BoardVisibility `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE TEAM"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		OwnerID:     userID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns all boards the user is a member of
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.boardService.ListBoardsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch boards")
		return
	}

	boards := make([]dto.BoardWithRoleDTO, len(memberships))
	for i, m := range memberships {
		boards[i] = dto.ToBoardWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boards,
	})
}

// GetBoard returns board details with members
func (h *BoardHandler) GetBoard(c *gin.Context) {
	// Board is already loaded by RequireBoardAccess middleware
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	memberInterface, _ := c.Get("board_member")
	member := memberInterface.(models.BoardMember)

	_, members, err := h.boardService.GetBoardWithMembers(board.ID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(board, members, member.Role))
}

// UpdateBoard updates board title, description, visibility or archive state
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	type UpdateBoardRequest struct {
		Title       *string                 `json:"title"`
		Description *string                 `json:"description"`
		Visibility  *models.BoardVisibility `json:"visibility" binding:"omitempty,oneof=PUBLIC PRIVATE TEAM"`
		IsArchived  *bool                   `json:"is_archived"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.boardService.UpdateBoard(board.ID, services.UpdateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*updated))
}

// DeleteBoard deletes a board with all of its content
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	if err := h.boardService.DeleteBoard(board.ID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

// RemoveMember removes a member from the board, running ownership succession
// when the owner leaves
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	requesterID, _ := middleware.GetUserID(c)

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.membershipService.RemoveMember(board.ID, targetID, requesterID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// ChangeMemberRole updates a member's role on the board
func (h *BoardHandler) ChangeMemberRole(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	requesterID, _ := middleware.GetUserID(c)

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type ChangeRoleRequest struct {
		Role models.BoardRole `json:"role" binding:"required,oneof=ADMIN MEMBER OBSERVER"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.membershipService.ChangeRole(board.ID, targetID, requesterID, req.Role)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"board_id": member.BoardID,
		"user_id":  member.UserID,
		"role":     member.Role,
	})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOwner),
		errors.Is(err, services.ErrOnlyAdminsRemoveOthers),
		errors.Is(err, services.ErrCannotChangeOwnerRole):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidBoardTitle),
		errors.Is(err, services.ErrLastAdminDemotion):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
