package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/hibiken/asynq"
)

// ImportJobPayload describes one queued import run. It lives only on the
// queue and is never persisted.
type ImportJobPayload struct {
	FileKey string `json:"file_key"`
	BoardID uint64 `json:"board_id"`
	UserID  uint64 `json:"user_id"`
}

// Enqueuer is the port services use to hand work to the job queue.
type Enqueuer interface {
	EnqueueImport(ctx context.Context, payload ImportJobPayload) error
}

// Client wraps an asynq client for the API process.
type Client struct {
	inner *asynq.Client
}

// NewClient creates a queue client against the given Redis address.
func NewClient(redisAddr string) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

// EnqueueImport queues a Trello import job. Retries past the first attempt
// are left to the queue's policy; the pipeline itself never retries.
func (c *Client) EnqueueImport(ctx context.Context, payload ImportJobPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal import payload: %w", err)
	}

	task := asynq.NewTask(constants.TaskImportJob, data)
	if _, err := c.inner.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue import job: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connections.
func (c *Client) Close() error {
	return c.inner.Close()
}

// ParseImportPayload decodes a queued import task back into its payload.
func ParseImportPayload(t *asynq.Task) (ImportJobPayload, error) {
	var payload ImportJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return ImportJobPayload{}, fmt.Errorf("failed to unmarshal import payload: %w", err)
	}
	return payload, nil
}
