package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harukisol/board-management-api/internal/config"
	"github.com/harukisol/board-management-api/internal/database"
	"github.com/harukisol/board-management-api/internal/handlers"
	"github.com/harukisol/board-management-api/internal/middleware"
	"github.com/harukisol/board-management-api/internal/queue"
	"github.com/harukisol/board-management-api/internal/realtime"
	"github.com/harukisol/board-management-api/internal/repository"
	"github.com/harukisol/board-management-api/internal/services"
	"github.com/harukisol/board-management-api/internal/storage"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	db := database.GetDB()
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.ImportBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	queueClient := queue.NewClient(cfg.RedisAddr)
	defer queueClient.Close()

	hub := realtime.NewHub()

	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	boardService := services.NewBoardService(boardRepo, hub)
	membershipService := services.NewMembershipService(boardRepo, hub)
	inviteService := services.NewInviteService(inviteRepo, boardRepo, userRepo, hub)
	listService := services.NewListService(listRepo, hub)
	taskService := services.NewTaskService(taskRepo, listRepo, hub)
	importService := services.NewImportService(store, queueClient)

	secureCookie := cfg.GinMode == "release"

	authHandler := handlers.NewAuthHandler(authService, secureCookie)
	boardHandler := handlers.NewBoardHandler(boardService, membershipService)
	listHandler := handlers.NewListHandler(listService)
	taskHandler := handlers.NewTaskHandler(taskService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	importHandler := handlers.NewImportHandler(importService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.GetCurrentUser)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			authed.POST("/boards", boardHandler.CreateBoard)
			authed.GET("/boards", boardHandler.ListBoards)

			authed.GET("/invites", inviteHandler.ListMyInvites)
			authed.POST("/invites/:id/respond", inviteHandler.RespondInvite)

			board := authed.Group("/boards/:id")
			board.Use(middleware.RequireBoardAccess())
			{
				board.GET("", boardHandler.GetBoard)
				board.GET("/ws", wsHandler.SubscribeBoard)
				board.GET("/lists", listHandler.ListLists)
				board.GET("/lists/:list_id/tasks", taskHandler.ListTasks)

				write := board.Group("")
				write.Use(middleware.RequireBoardWrite())
				{
					write.POST("/lists", listHandler.CreateList)
					write.PUT("/lists/:list_id", listHandler.UpdateList)
					write.PUT("/lists/:list_id/move", listHandler.MoveList)
					write.DELETE("/lists/:list_id", listHandler.DeleteList)
					write.POST("/lists/:list_id/tasks", taskHandler.CreateTask)
				}

				admin := board.Group("")
				admin.Use(middleware.RequireBoardAdmin())
				{
					admin.PUT("", boardHandler.UpdateBoard)
					admin.DELETE("", boardHandler.DeleteBoard)
					admin.POST("/invites", inviteHandler.InviteUser)
					admin.PUT("/members/:user_id/role", boardHandler.ChangeMemberRole)
					admin.POST("/import", importHandler.ImportBoard)
				}

				// leaving the board yourself is allowed without ADMIN
				board.DELETE("/members/:user_id", boardHandler.RemoveMember)
			}

			task := authed.Group("/tasks/:id")
			task.Use(middleware.RequireTaskAccess())
			{
				task.GET("", taskHandler.GetTask)

				taskWrite := task.Group("")
				taskWrite.Use(middleware.RequireBoardWrite())
				{
					taskWrite.PUT("", taskHandler.UpdateTask)
					taskWrite.PUT("/move", taskHandler.MoveTask)
					taskWrite.DELETE("", taskHandler.DeleteTask)
				}
			}
		}
	}

	log.Println("Starting server on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
