package main

import (
	"context"
	"log"

	"github.com/harukisol/board-management-api/internal/config"
	"github.com/harukisol/board-management-api/internal/constants"
	"github.com/harukisol/board-management-api/internal/database"
	"github.com/harukisol/board-management-api/internal/importer"
	"github.com/harukisol/board-management-api/internal/queue"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/harukisol/board-management-api/internal/storage"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.ImportBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	db := database.GetDB()
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// the socket hub lives in the API process; the worker has no subscribers
	pipeline := importer.NewPipeline(store, listRepo, taskRepo, realtime.NoopNotifier{})

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskImportJob, func(ctx context.Context, t *asynq.Task) error {
		payload, err := queue.ParseImportPayload(t)
		if err != nil {
			return err
		}
		log.Printf("Importing %s into board %d", payload.FileKey, payload.BoardID)
		return pipeline.Run(ctx, payload)
	})

	log.Println("Starting import worker")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
