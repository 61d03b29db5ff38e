package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/models"
	"github.com/harukisol/board-management-api/internal/queue"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/harukisol/board-management-api/internal/storage"
)

// trelloList is one element of the export's top-level "lists" array. Fields
// not listed here are ignored.
type trelloList struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// trelloCard is one element of the export's top-level "cards" array.
type trelloCard struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Desc   string     `json:"desc"`
	IDList string     `json:"idList"`
	Closed bool       `json:"closed"`
	Due    *time.Time `json:"due"`
}

// Pipeline streams a Trello board export into a board in two passes: lists
// first, then cards resolved against the freshly created lists. The export is
// read from the object store once per pass so the whole document never sits
// in memory; batches are flushed inline in the decode loop, which keeps the
// parser from running ahead of the database writes.
//
// Re-running an import against the same board duplicates its content: there
// is no dedup against external IDs on the creation path.
type Pipeline struct {
	store     storage.ObjectStore
	listRepo  repository.ListRepository
	taskRepo  repository.TaskRepository
	notifier  realtime.Notifier
	batchSize int
}

// NewPipeline creates a Pipeline with the standard batch size.
func NewPipeline(store storage.ObjectStore, listRepo repository.ListRepository, taskRepo repository.TaskRepository, notifier realtime.Notifier) *Pipeline {
	return &Pipeline{
		store:     store,
		listRepo:  listRepo,
		taskRepo:  taskRepo,
		notifier:  notifier,
		batchSize: constants.ImportBatchSize,
	}
}

// Run executes one import job. Any parse or persistence error aborts the
// whole run and is surfaced as a job failure; retries belong to the queue.
func (p *Pipeline) Run(ctx context.Context, job queue.ImportJobPayload) error {
	if err := p.importLists(ctx, job); err != nil {
		return fmt.Errorf("lists pass: %w", err)
	}

	listIDs, err := p.buildListIDMap(job.BoardID)
	if err != nil {
		return fmt.Errorf("list id map: %w", err)
	}

	if err := p.importCards(ctx, job, listIDs); err != nil {
		return fmt.Errorf("cards pass: %w", err)
	}

	p.notifier.EmitBoardChange(job.BoardID, constants.ActionImportCompleted, map[string]interface{}{
		"file_key": job.FileKey,
		"user_id":  job.UserID,
	})

	return nil
}

// importLists streams the "lists" array and bulk-inserts pending lists in
// batches of batchSize.
func (p *Pipeline) importLists(ctx context.Context, job queue.ImportJobPayload) error {
	stream, err := p.store.GetFileStream(ctx, job.FileKey)
	if err != nil {
		return err
	}
	defer stream.Close()

	position, err := p.listRepo.MaxPosition(job.BoardID)
	if err != nil {
		return err
	}

	batch := make([]models.List, 0, p.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.listRepo.CreateInBatch(batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	dec := json.NewDecoder(stream)
	err = streamTopLevelArray(dec, "lists", func() error {
		var tl trelloList
		if err := dec.Decode(&tl); err != nil {
			return err
		}

		externalID := tl.ID
		position++
		batch = append(batch, models.List{
			BoardID:    job.BoardID,
			ExternalID: &externalID,
			Title:      tl.Name,
			Position:   position,
			IsArchived: tl.Closed,
		})

		if len(batch) >= p.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	return flush()
}

// buildListIDMap reads back the board's persisted lists and maps external
// Trello IDs to internal ones. The map must be complete before the cards
// pass starts.
func (p *Pipeline) buildListIDMap(boardID uint64) (map[string]uint64, error) {
	lists, err := p.listRepo.ListByBoard(boardID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]uint64, len(lists))
	for _, l := range lists {
		if l.ExternalID != nil {
			ids[*l.ExternalID] = l.ID
		}
	}
	return ids, nil
}

// importCards streams the "cards" array, resolves each card's list through
// the external-ID map, and bulk-inserts per destination list in batches of
// batchSize. Cards pointing at unknown lists are silently skipped.
func (p *Pipeline) importCards(ctx context.Context, job queue.ImportJobPayload, listIDs map[string]uint64) error {
	stream, err := p.store.GetFileStream(ctx, job.FileKey)
	if err != nil {
		return err
	}
	defer stream.Close()

	groups := make(map[uint64][]models.Task)
	nextPosition := make(map[uint64]int)

	flushGroup := func(listID uint64) error {
		group := groups[listID]
		if len(group) == 0 {
			return nil
		}
		if err := p.taskRepo.CreateInBatch(group); err != nil {
			return err
		}
		groups[listID] = nil
		return nil
	}

	dec := json.NewDecoder(stream)
	err = streamTopLevelArray(dec, "cards", func() error {
		var tc trelloCard
		if err := dec.Decode(&tc); err != nil {
			return err
		}

		listID, ok := listIDs[tc.IDList]
		if !ok {
			// The card belongs to a list outside the import scope.
			return nil
		}

		if _, seen := nextPosition[listID]; !seen {
			count, err := p.taskRepo.CountByList(listID)
			if err != nil {
				return err
			}
			nextPosition[listID] = int(count)
		}

		// A due date implies not-yet-completed work; everything else is
		// treated as done.
		status := models.TaskStatusDone
		var completedAt *time.Time
		if tc.Due != nil {
			status = models.TaskStatusTodo
		} else {
			now := time.Now()
			completedAt = &now
		}

		externalID := tc.ID
		groups[listID] = append(groups[listID], models.Task{
			ExternalID:  &externalID,
			ListID:      listID,
			CreatorID:   job.UserID,
			Title:       tc.Name,
			Description: tc.Desc,
			Position:    nextPosition[listID],
			Status:      status,
			DueDate:     tc.Due,
			IsArchived:  tc.Closed,
			CompletedAt: completedAt,
		})
		nextPosition[listID]++

		if len(groups[listID]) >= p.batchSize {
			return flushGroup(listID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for listID := range groups {
		if err := flushGroup(listID); err != nil {
			return err
		}
	}
	return nil
}

// streamTopLevelArray walks the export's top-level object and invokes fn once
// per element of the named array, leaving the decoder positioned on that
// element. Other top-level values are skipped without materializing them.
func streamTopLevelArray(dec *json.Decoder, key string, fn func() error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected top-level object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		if name != key {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			return fmt.Errorf("expected %q to be an array, got %v", key, tok)
		}

		for dec.More() {
			if err := fn(); err != nil {
				return err
			}
		}

		if _, err := dec.Token(); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// skipValue advances the decoder past the next value token by token. Unlike
// decoding into a RawMessage, this never buffers the value, so a skipped
// sibling array the size of the whole export streams through in constant
// memory.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
