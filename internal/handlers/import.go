package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/dto"
	apierrors "github.com/harukisol/board-management-api/internal/errors"
	"github.com/harukisol/board-management-api/internal/middleware"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/services"
)

// ImportHandler accepts Trello export uploads and queues them for processing.
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportBoard uploads a Trello JSON export and enqueues the import job.
// Responds 202 as soon as the job is queued; the import itself runs in the
// worker and its effects show up on the board afterwards.
func (h *ImportHandler) ImportBoard(c *gin.Context) {
	boardInterface, _ := c.Get("board")
	board := boardInterface.(models.Board)

	userID, _ := middleware.GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Import file is required")
		return
	}
	if fileHeader.Size > constants.MaxImportFileSize {
		apierrors.BadRequest(c, services.ErrImportFileTooLarge.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read import file")
		return
	}
	defer file.Close()

	key, err := h.importService.StartImport(c.Request.Context(), userID, board.ID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		apierrors.InternalError(c, "Failed to start import")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "Import queued",
		"file_key": key,
		"board":    dto.ToBoardDTO(board),
	})
}
