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

// InviteHandler coordinates invite HTTP handlers.
type InviteHandler struct {
	inviteService *services.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// InviteUser invites a user to the board by username
func (h *InviteHandler) InviteUser(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	senderID, _ := middleware.GetUserID(c)

	type InviteRequest struct {
		Username string           `json:"username" binding:"required"`
		Role     models.BoardRole `json:"role" binding:"omitempty,oneof=ADMIN MEMBER OBSERVER"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.inviteService.Invite(services.InviteInput{
		BoardID:  board.ID,
		SenderID: senderID,
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// ListMyInvites returns the caller's pending invites
func (h *InviteHandler) ListMyInvites(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	invites, err := h.inviteService.ListForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch invites")
		return
	}

	inviteDTOs := make([]dto.InviteDTO, len(invites))
	for i, invite := range invites {
		inviteDTOs[i] = dto.ToInviteDTO(invite)
	}

	c.JSON(http.StatusOK, gin.H{
		"invites": inviteDTOs,
	})
}

// RespondInvite accepts or declines an invite addressed to the caller
func (h *InviteHandler) RespondInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invite ID")
		return
	}

	type RespondRequest struct {
		Accept bool `json:"accept"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.inviteService.Respond(inviteID, userID, req.Accept)
	if err != nil {
		respondInviteError(c, err)
		return
	}

	if member == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Invite declined",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Invite accepted",
		"board_id": member.BoardID,
		"role":     member.Role,
	})
}

func respondInviteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInviteeNotFound),
		errors.Is(err, services.ErrInviteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOnlyAdminsInvite),
		errors.Is(err, services.ErrNotInviteRecipient):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDuplicateInvite),
		errors.Is(err, services.ErrAlreadyBoardMember):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
