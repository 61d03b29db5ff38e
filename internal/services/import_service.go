package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harukisol/board-management-api/internal/queue"
	"github.com/harukisol/board-management-api/internal/storage"
	"github.com/harukisol/board-management-api/internal/utils"
)

var ErrImportFileTooLarge = errors.New("Import file exceeds the size limit")

// ImportService persists an uploaded Trello export and queues the import job.
// Processing is asynchronous: the caller gets an acknowledgement immediately
// and observes the outcome only through the board's resulting state.
type ImportService struct {
	store    storage.ObjectStore
	enqueuer queue.Enqueuer
}

// NewImportService creates a new ImportService.
func NewImportService(store storage.ObjectStore, enqueuer queue.Enqueuer) *ImportService {
	return &ImportService{
		store:    store,
		enqueuer: enqueuer,
	}
}

// StartImport uploads the export to durable storage (written once, streamed
// twice by the pipeline) and enqueues the job. Returns the object key.
func (s *ImportService) StartImport(ctx context.Context, userID, boardID uint64, filename string, file io.Reader, size int64) (string, error) {
	key := utils.GenerateImportFileKey(boardID, filename)

	if err := s.store.UploadFile(ctx, key, file, size, "application/json"); err != nil {
		return "", fmt.Errorf("failed to store import file: %w", err)
	}

	payload := queue.ImportJobPayload{
		FileKey: key,
		BoardID: boardID,
		UserID:  userID,
	}
	if err := s.enqueuer.EnqueueImport(ctx, payload); err != nil {
		return "", fmt.Errorf("failed to enqueue import: %w", err)
	}

	return key, nil
}
